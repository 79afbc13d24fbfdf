package effect

import (
	"github.com/decker502/stagefx/pkg/easing"
	"github.com/decker502/stagefx/pkg/types"
)

// Curve 标量属性的曲线：命名曲线或自定义函数，自定义函数优先
type Curve struct {
	Kind easing.Kind
	Func func(progress float64) float64
}

// Named 命名曲线
func Named(k easing.Kind) Curve {
	return Curve{Kind: k}
}

// CustomCurve 自定义曲线
func CustomCurve(fn func(float64) float64) Curve {
	return Curve{Kind: easing.Custom, Func: fn}
}

// IsCustom 是否由自定义函数驱动
func (c Curve) IsCustom() bool { return c.Func != nil }

// Eval 求曲线乘数
func (c Curve) Eval(progress float64) float64 {
	if c.Func != nil {
		return c.Func(progress)
	}
	return easing.Evaluate(c.Kind, progress)
}

// ColorCurve 颜色属性的曲线。
// 没有自定义函数时颜色保持基础色，命名曲线不生效。
type ColorCurve struct {
	Kind easing.Kind
	Func func(progress float64) types.Color
}

// CustomColor 自定义颜色曲线
func CustomColor(fn func(float64) types.Color) ColorCurve {
	return ColorCurve{Kind: easing.Custom, Func: fn}
}
