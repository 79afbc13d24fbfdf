package types

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color 浮点 RGBA 颜色（非预乘，各通道 0-1）
//
// 粒子和效果层在模拟阶段都使用浮点颜色，只有在提交绘制时才转换为
// 渲染后端需要的格式（见 Premultiplied）。
type Color struct {
	R, G, B, A float64
}

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
)

// RGBA8 从 8 位通道构造颜色
func RGBA8(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// Mul 分量相乘（着色 × 光照）
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Add 逐通道相加（不截断）
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale 所有通道乘以 s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// ScaleRGB 只缩放颜色通道，保留 alpha
func (c Color) ScaleRGB(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// WithAlpha 返回替换 alpha 后的颜色
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp 颜色线性插值
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Clamp 把每个通道限制在 [0,1]
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Premultiplied 返回预乘后的 float32 通道，直接用于 ebiten.ColorScale.Scale
func (c Color) Premultiplied() (r, g, b, a float32) {
	c = c.Clamp()
	return float32(c.R * c.A), float32(c.G * c.A), float32(c.B * c.A), float32(c.A)
}

// NRGBA 转换为标准库颜色
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Luminance 感知亮度
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa"（# 可省略）
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// UnmarshalText 支持在配置文件中直接写十六进制颜色
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
