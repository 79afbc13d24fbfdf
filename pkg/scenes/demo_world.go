package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/stagefx/pkg/types"
)

const demoTileSize = 32

var (
	skyTop    = types.RGBA8(14, 16, 40, 255)
	skyBottom = types.RGBA8(60, 40, 90, 255)
	hillColor = color.RGBA{30, 28, 60, 255}
	dirtColor = types.RGBA8(96, 70, 48, 255)
	turfColor = types.RGBA8(70, 120, 60, 255)
	crateBody = types.RGBA8(150, 110, 60, 255)
	crateEdge = types.RGBA8(90, 60, 30, 255)
)

type crate struct {
	pos  types.Vec2
	size float64
}

// demoWorld 演示世界的静态内容：天空、远山、地面图块、箱子
type demoWorld struct {
	width   float64
	groundY float64
	hills   []types.Vec2
	crates  []crate
}

func newDemoWorld(width, groundY float64) *demoWorld {
	w := &demoWorld{width: width, groundY: groundY}
	for x := 0.0; x < width; x += 260 {
		w.hills = append(w.hills, types.V(x+80, groundY+60))
	}
	for i, x := range []float64{220, 520, 560, 980, 1400, 1440, 1420, 1800} {
		size := 48.0
		y := groundY - size
		// 相同位置的箱子叠起来
		if i == 6 {
			y -= size
		}
		w.crates = append(w.crates, crate{pos: types.V(x, y), size: size})
	}
	return w
}

// drawSky 竖直渐变条带
func (w *demoWorld) drawSky(screen *ebiten.Image) {
	b := screen.Bounds()
	const bands = 24
	h := float32(b.Dy()) / bands
	for i := 0; i < bands; i++ {
		c := skyTop.Lerp(skyBottom, float64(i)/(bands-1))
		vector.DrawFilledRect(screen, 0, float32(i)*h, float32(b.Dx()), h+1, c.NRGBA(), false)
	}
}

// drawHills 远景视差 0.5
func (w *demoWorld) drawHills(screen *ebiten.Image, cam types.Vec2) {
	for _, h := range w.hills {
		x := h.X - cam.X*0.5
		vector.DrawFilledCircle(screen, float32(x), float32(h.Y-cam.Y), 180, hillColor, true)
	}
}

// drawGround 地面图块，按所在光照单元着色
func (w *demoWorld) drawGround(screen *ebiten.Image, cam types.Vec2, light func(types.Vec2) types.Color) {
	first := float64(int(cam.X/demoTileSize)) * demoTileSize
	last := min(cam.X+float64(screen.Bounds().Dx())+demoTileSize, w.width)
	bottom := float64(screen.Bounds().Dy()) + cam.Y
	for x := first; x < last; x += demoTileSize {
		for y := w.groundY; y < bottom; y += demoTileSize {
			base := dirtColor
			if y == w.groundY {
				base = turfColor
			}
			center := types.V(x+demoTileSize/2, y+demoTileSize/2)
			c := base.Mul(light(center))
			vector.DrawFilledRect(screen, float32(x-cam.X), float32(y-cam.Y), demoTileSize-1, demoTileSize-1, c.NRGBA(), false)
		}
	}
}

// drawCrates 箱子位于实体阶段之前，效果粒子会绘制在箱子之上
func (w *demoWorld) drawCrates(screen *ebiten.Image, cam types.Vec2, light func(types.Vec2) types.Color) {
	for _, c := range w.crates {
		center := c.pos.Add(types.V(c.size/2, c.size/2))
		l := light(center)
		x, y := float32(c.pos.X-cam.X), float32(c.pos.Y-cam.Y)
		s := float32(c.size)
		vector.DrawFilledRect(screen, x, y, s, s, crateBody.Mul(l).NRGBA(), false)
		edge := crateEdge.Mul(l).NRGBA()
		vector.StrokeRect(screen, x+2, y+2, s-4, s-4, 3, edge, false)
		vector.StrokeLine(screen, x+2, y+2, x+s-2, y+s-2, 3, edge, true)
	}
}

// drawTwistRing 扭曲圆环的可视化：半径随扩散增长，透明度随强度衰减
func drawTwistRing(screen *ebiten.Image, center types.Vec2, radius, strength float64) {
	if radius <= 0 || strength <= 0 {
		return
	}
	a := min(strength, 1)
	c := types.Color{R: 0.7, G: 0.85, B: 1, A: a}
	vector.StrokeCircle(screen, float32(center.X), float32(center.Y), float32(radius), 4, c.NRGBA(), true)
	inner := c.WithAlpha(a * 0.4)
	vector.StrokeCircle(screen, float32(center.X), float32(center.Y), float32(radius*0.8), 2, inner.NRGBA(), true)
}
