package render

import (
	"image"

	"github.com/decker502/stagefx/pkg/types"
)

// Image 不透明的图片句柄，只要求能查询尺寸（*ebiten.Image 直接满足）
type Image interface {
	Bounds() image.Rectangle
}

// ImageSize 返回图片宽高，nil 返回 0
func ImageSize(img Image) types.Vec2 {
	if img == nil {
		return types.Vec2{}
	}
	b := img.Bounds()
	return types.V(float64(b.Dx()), float64(b.Dy()))
}

// ImageCenter 图片中心（绘制原点）
func ImageCenter(img Image) types.Vec2 {
	return ImageSize(img).Scale(0.5)
}

// DrawOptions 单次绘制参数
type DrawOptions struct {
	// Position 屏幕坐标
	Position types.Vec2
	// Origin 图片内的旋转/缩放原点（像素）
	Origin types.Vec2
	// Rotation 弧度
	Rotation float64
	// Scale 分量缩放
	Scale types.Vec2
	// Color 非预乘着色
	Color types.Color
	// FlipH 水平翻转
	FlipH bool
	// Source 源矩形，nil 表示整张图
	Source *image.Rectangle
}

// Canvas 粒子绘制目标
//
// 同一混合模式下的连续绘制属于同一批次；Begin 切换到不同模式时
// 先提交当前批次再开始新批次，模式相同则什么也不做。
type Canvas interface {
	// Mode 当前批次的混合模式
	Mode() BlendMode
	// Begin 切换混合模式
	Begin(mode BlendMode)
	// Draw 在当前批次中绘制图片
	Draw(img Image, op *DrawOptions)
	// Size 画布尺寸（屏幕像素）
	Size() types.Vec2
}

// WithMode 在 mode 下执行 fn，结束后恢复之前的模式（fn panic 时也恢复）
func WithMode(c Canvas, mode BlendMode, fn func()) {
	prev := c.Mode()
	if prev != mode {
		c.Begin(mode)
	}
	defer func() {
		if c.Mode() != prev {
			c.Begin(prev)
		}
	}()
	fn()
}
