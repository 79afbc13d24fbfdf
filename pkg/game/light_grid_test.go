package game

import (
	"math"
	"testing"

	"github.com/decker502/stagefx/pkg/types"
)

func TestLightGrid(t *testing.T) {
	g := NewLightGrid(types.Color{R: 0.2, G: 0.2, B: 0.2, A: 1})

	if c := g.ColorAt(3, 4); math.Abs(c.R-0.2) > 1e-9 || c.A != 1 {
		t.Errorf("环境光 = %+v", c)
	}

	g.AddLight(3, 4, types.Color{R: 0.5, G: 0.1, B: 0, A: 0.3})
	g.AddLight(3, 4, types.Color{R: 0.5, G: 0.1, B: 0, A: 0.3})

	c := g.ColorAt(3, 4)
	if c.R != 1 {
		t.Errorf("R = %v, 期望截断到 1", c.R)
	}
	if math.Abs(c.G-0.4) > 1e-9 || math.Abs(c.B-0.2) > 1e-9 {
		t.Errorf("叠加结果 = %+v", c)
	}
	if c.A != 1 {
		t.Errorf("A = %v, 光照颜色的 alpha 恒为 1", c.A)
	}
	if g.LitCells() != 1 {
		t.Errorf("LitCells = %d, 期望 1", g.LitCells())
	}

	visited := 0
	g.Each(func(x, y int, c types.Color) {
		visited++
		if x != 3 || y != 4 {
			t.Errorf("单元 = (%d, %d)", x, y)
		}
	})
	if visited != 1 {
		t.Errorf("Each 访问 %d 个单元", visited)
	}

	g.Reset()
	if g.LitCells() != 0 || math.Abs(g.ColorAt(3, 4).R-0.2) > 1e-9 {
		t.Error("Reset 后只剩环境光")
	}
}

func TestCamera(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Bounds = types.V(2000, 600)

	cam.Pan(types.V(100, 50))
	if cam.ScreenPosition() != types.V(100, 0) {
		t.Errorf("Pan 后位置 = %v, 期望 (100, 0)", cam.ScreenPosition())
	}

	cam.CenterOn(types.V(1900, 300))
	if cam.Position.X != 1200 {
		t.Errorf("CenterOn 应被限制在世界内: %v", cam.Position)
	}

	cam.Pan(types.V(-5000, 0))
	if cam.Position.X != 0 {
		t.Errorf("Pan 应被限制在世界内: %v", cam.Position)
	}

	cam.Position = types.V(10, 20)
	w := cam.ScreenToWorld(types.V(5, 5))
	if w != types.V(15, 25) || cam.WorldToScreen(w) != types.V(5, 5) {
		t.Errorf("坐标转换错误: %v", w)
	}

	free := NewCamera(100, 100)
	free.Pan(types.V(-50, -50))
	if free.Position != types.V(-50, -50) {
		t.Errorf("无边界时不限制: %v", free.Position)
	}
}
