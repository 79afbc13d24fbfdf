// Package termview 把粒子绘制栅格化到终端字符单元上。
//
// Canvas 实现 render.Canvas：每次 Draw 按贴图尺寸和缩放覆盖若干单元，
// 用当前批次的混合模式把颜色合成到单元背景上；Present 再把整个网格
// 写到 tcell 屏幕。
package termview

import (
	"image"
	"math"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/types"
)

// 单个粒子最多覆盖的单元半径，避免大贴图刷满整屏
const maxFootprint = 4

// Cell 终端单元
type Cell struct {
	Rune rune
	Fg   types.Color
	Bg   types.Color
	// Hits 本帧覆盖该单元的绘制次数
	Hits int
}

// Stats 当前帧的栅格化统计
type Stats struct {
	Draws    int
	Clipped  int
	Switches int
}

// Canvas 终端字符网格画布
type Canvas struct {
	cols, rows int
	// cellW, cellH 每个单元对应的屏幕像素
	cellW, cellH float64

	cells      []Cell
	background types.Color
	mode       render.BlendMode
	stats      Stats
}

// NewCanvas 创建 cols×rows 的网格，每个单元代表 cellW×cellH 像素
func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	c := &Canvas{
		cellW:      max(cellW, 1),
		cellH:      max(cellH, 1),
		background: types.Black,
	}
	c.Resize(cols, rows)
	return c
}

// Resize 调整网格并清空
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	size := cols * rows
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.cols, c.rows = cols, rows
	c.Clear()
}

// SetBackground 设置 Clear 使用的底色
func (c *Canvas) SetBackground(bg types.Color) { c.background = bg }

// Clear 重置全部单元并清零统计，模式回到 AlphaBlend
func (c *Canvas) Clear() {
	if len(c.cells) == 0 {
		c.stats = Stats{}
		c.mode = render.AlphaBlend
		return
	}
	c.cells[0] = Cell{Rune: ' ', Fg: c.background, Bg: c.background}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
	c.stats = Stats{}
	c.mode = render.AlphaBlend
}

// Grid 网格尺寸（单元）
func (c *Canvas) Grid() (cols, rows int) { return c.cols, c.rows }

// Cell 返回单元，越界返回空单元和 false
func (c *Canvas) Cell(x, y int) (Cell, bool) {
	if !c.inBounds(x, y) {
		return Cell{}, false
	}
	return c.cells[y*c.cols+x], true
}

// Stats 返回本帧统计
func (c *Canvas) Stats() Stats { return c.stats }

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows
}

// Mode 实现 render.Canvas
func (c *Canvas) Mode() render.BlendMode { return c.mode }

// Begin 实现 render.Canvas
func (c *Canvas) Begin(mode render.BlendMode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.stats.Switches++
}

// Size 实现 render.Canvas，返回网格覆盖的屏幕像素
func (c *Canvas) Size() types.Vec2 {
	return types.V(float64(c.cols)*c.cellW, float64(c.rows)*c.cellH)
}

// Draw 实现 render.Canvas
//
// 贴图中心所在单元取字形并完整合成颜色，半径内的其余单元按距离衰减合成。
func (c *Canvas) Draw(img render.Image, op *render.DrawOptions) {
	if img == nil || op == nil {
		return
	}
	col := op.Color
	if col.A <= 0 {
		return
	}
	c.stats.Draws++

	size := render.ImageSize(img)
	if op.Source != nil {
		size = types.V(float64(op.Source.Dx()), float64(op.Source.Dy()))
	}
	// Position 是原点所在位置，换算出贴图中心
	center := op.Position.Add(size.Scale(0.5).Sub(op.Origin).Mul(op.Scale))
	cx := int(math.Floor(center.X / c.cellW))
	cy := int(math.Floor(center.Y / c.cellH))

	rx := min(math.Abs(size.X*op.Scale.X)/2/c.cellW, maxFootprint)
	ry := min(math.Abs(size.Y*op.Scale.Y)/2/c.cellH, maxFootprint)
	ix, iy := int(rx), int(ry)

	if cx+ix < 0 || cx-ix >= c.cols || cy+iy < 0 || cy-iy >= c.rows {
		c.stats.Clipped++
		return
	}

	glyph := glyphOf(img)
	for y := cy - iy; y <= cy+iy; y++ {
		for x := cx - ix; x <= cx+ix; x++ {
			if !c.inBounds(x, y) {
				continue
			}
			falloff := 1.0
			if x != cx || y != cy {
				dx := float64(x-cx) / math.Max(rx, 0.5)
				dy := float64(y-cy) / math.Max(ry, 0.5)
				d := math.Hypot(dx, dy)
				if d > 1 {
					continue
				}
				falloff = 1 - d*0.75
			}
			cell := &c.cells[y*c.cols+x]
			cell.Bg = Blend(cell.Bg, col.WithAlpha(col.A*falloff), c.mode)
			cell.Hits++
			if x == cx && y == cy {
				cell.Rune = glyph
				cell.Fg = Blend(cell.Fg, col.WithAlpha(1), render.Opaque)
			}
		}
	}
}

// Blend 按混合模式把 src 合成到 dst 上，结果不透明
func Blend(dst, src types.Color, mode render.BlendMode) types.Color {
	a := math.Max(0, math.Min(1, src.A))
	var out types.Color
	switch mode {
	case render.Opaque:
		out = src
	case render.Additive:
		out = dst.Add(src.Scale(a))
	case render.Subtract:
		out = types.Color{R: dst.R - src.R*a, G: dst.G - src.G*a, B: dst.B - src.B*a}
	case render.Multiply:
		out = dst.Mul(types.White.Lerp(src, a))
	default:
		out = dst.Lerp(src, a)
	}
	out.A = 1
	return out.Clamp()
}

// glyphOf 贴图没有字形时按尺寸选择一个
func glyphOf(img render.Image) rune {
	if g, ok := img.(Glyph); ok && g.Rune != 0 {
		return g.Rune
	}
	if b := img.Bounds(); b.Dx()*b.Dy() >= 48*48 {
		return '@'
	}
	return '*'
}

// Glyph 终端贴图：字形加上用于计算覆盖范围的逻辑尺寸
type Glyph struct {
	Rune rune
	W, H int
}

// Bounds 实现 render.Image
func (g Glyph) Bounds() image.Rectangle { return image.Rect(0, 0, g.W, g.H) }
