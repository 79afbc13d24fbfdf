package particle

import (
	"image"
	"math"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// MaskMode 全屏遮罩的铺放方式
type MaskMode int

const (
	// MaskStretch 拉伸铺满屏幕
	MaskStretch MaskMode = iota
	// MaskTile 平铺
	MaskTile
)

// ScreenMask 全屏遮罩粒子（暗角、闪白、屏幕纹理等）。
// 绘制位置恒为屏幕原点，从不参与离屏剔除。
type ScreenMask struct {
	Base

	Mode MaskMode
	// TileOffset 平铺偏移（贴图像素）
	TileOffset types.Vec2
	TileScale  float64
	// Blend 遮罩使用的混合模式
	Blend render.BlendMode
	// FadeOut 按寿命比例线性淡出
	FadeOut bool
}

func (m *ScreenMask) SetDefaults() {
	m.Base.SetDefaults()
	m.Stage = stage.BeforeSolidTiles
	m.UseLighting = false
	m.TileCollide = false
	m.CullOffscreen = false
	m.Width, m.Height = 1, 1
	m.Scale = 1
	m.Mode = MaskStretch
	m.TileScale = 1
	m.Color = types.White
}

// SetTexture 设置遮罩贴图与铺放方式
func (m *ScreenMask) SetTexture(tex render.Image, mode MaskMode, src *image.Rectangle) {
	m.Texture = tex
	m.Mode = mode
	m.Source = src
}

// PostStep 遮罩永远在屏幕内
func (m *ScreenMask) PostStep() {}

// DrawPosition 遮罩始终从屏幕原点绘制
func (m *ScreenMask) DrawPosition() types.Vec2 { return types.Vec2{} }

func (m *ScreenMask) currentColor() types.Color {
	c := m.Color
	a := m.Alpha
	if m.FadeOut {
		a *= 1 - m.LifeRatio()
	}
	c.A *= a
	return c
}

func (m *ScreenMask) sourceSize() types.Vec2 {
	if m.Source != nil {
		return types.V(float64(m.Source.Dx()), float64(m.Source.Dy()))
	}
	return render.ImageSize(m.Texture)
}

// Draw 遮罩不受光照影响
func (m *ScreenMask) Draw(c render.Canvas, light types.Color) {
	if m.Texture == nil {
		return
	}
	src := m.sourceSize()
	if src.X <= 0 || src.Y <= 0 {
		return
	}
	col := m.currentColor()
	render.WithMode(c, m.Blend, func() {
		switch m.Mode {
		case MaskTile:
			m.drawTiled(c, src, col)
		default:
			screen := c.Size()
			c.Draw(m.Texture, &render.DrawOptions{
				Position: m.DrawPosition(),
				Rotation: m.Rotation,
				Scale:    types.V(screen.X/src.X, screen.Y/src.Y),
				Color:    col,
				Source:   m.Source,
			})
		}
	})
}

func (m *ScreenMask) drawTiled(c render.Canvas, src types.Vec2, col types.Color) {
	k := m.TileScale * m.Scale
	if k <= 0 {
		return
	}
	tile := src.Scale(k)
	screen := c.Size()
	tilesX := int(math.Ceil(screen.X/tile.X)) + 1
	tilesY := int(math.Ceil(screen.Y/tile.Y)) + 1

	start := types.V(
		math.Mod(m.TileOffset.X*k, tile.X),
		math.Mod(m.TileOffset.Y*k, tile.Y),
	)
	if start.X > 0 {
		start.X -= tile.X
	}
	if start.Y > 0 {
		start.Y -= tile.Y
	}

	for y := 0; y < tilesY; y++ {
		for x := 0; x < tilesX; x++ {
			c.Draw(m.Texture, &render.DrawOptions{
				Position: start.Add(types.V(float64(x)*tile.X, float64(y)*tile.Y)),
				Rotation: m.Rotation,
				Scale:    types.V(k, k),
				Color:    col,
				Source:   m.Source,
			})
		}
	}
}
