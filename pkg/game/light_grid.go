package game

import (
	"github.com/decker502/stagefx/pkg/types"
)

type lightCell struct{ x, y int }

// LightGrid 稀疏光照网格，实现 particle.Lighting
//
// 每个单元的亮度 = 环境光 + 本步叠加的点光源，逐通道截断到 [0, 1]。
// 点光源只在一个模拟步内有效，宿主在每步开始时调用 Reset。
type LightGrid struct {
	Ambient types.Color
	cells   map[lightCell]types.Color
}

// NewLightGrid 创建指定环境光的网格
func NewLightGrid(ambient types.Color) *LightGrid {
	return &LightGrid{
		Ambient: ambient,
		cells:   make(map[lightCell]types.Color),
	}
}

// ColorAt 查询单元亮度
func (g *LightGrid) ColorAt(x, y int) types.Color {
	c := g.Ambient
	if add, ok := g.cells[lightCell{x, y}]; ok {
		c = c.Add(add)
	}
	c.A = 1
	return c.Clamp()
}

// AddLight 向单元叠加光照
func (g *LightGrid) AddLight(x, y int, c types.Color) {
	key := lightCell{x, y}
	g.cells[key] = g.cells[key].Add(types.Color{R: c.R, G: c.G, B: c.B})
}

// Reset 清除本步叠加的点光源
func (g *LightGrid) Reset() {
	clear(g.cells)
}

// LitCells 已叠加光照的单元数
func (g *LightGrid) LitCells() int {
	return len(g.cells)
}

// Each 遍历已叠加光照的单元
func (g *LightGrid) Each(fn func(x, y int, c types.Color)) {
	for k, c := range g.cells {
		fn(k.x, k.y, c)
	}
}
