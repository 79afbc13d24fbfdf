// Package easing 实现粒子与效果层使用的曲线求值器。
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]（越界输入会被钳制），返回塑形后的值。
// 单调的缓动曲线满足 f(0)=0、f(1)=1；脉冲/波形类曲线用于闪烁与呼吸效果，
// 按各自的闭式定义取值。
//
// 参考：https://easings.net/
package easing

import "math"

// Params 可调曲线参数
type Params struct {
	// Overshoot Back 系列的回弹量
	Overshoot float64
	// Amplitude Elastic 系列的振幅（小于 1 时按 1 处理）
	Amplitude float64
	// Period Elastic 系列的周期
	Period float64
	// Center Pulse 的中心
	Center float64
	// Width Pulse 的半宽
	Width float64
	// Frequency Wave/Sawtooth/Square 的频率
	Frequency float64
	// Duty Square 的占空比
	Duty float64
}

// DefaultParams 标准参数
var DefaultParams = Params{
	Overshoot: 1.70158,
	Amplitude: 1,
	Period:    0.3,
	Center:    0.5,
	Width:     0.5,
	Frequency: 1,
	Duty:      0.5,
}

// Func 进度到数值的曲线函数
type Func func(t float64) float64

// Evaluate 使用默认参数对命名曲线求值
func Evaluate(k Kind, t float64) float64 {
	return EvaluateWith(k, t, DefaultParams)
}

// EvaluateWith 使用指定参数对命名曲线求值。
// Custom 类型没有附带函数时按线性处理。
func EvaluateWith(k Kind, t float64, p Params) float64 {
	t = clamp01(t)
	switch k {
	case Linear, Custom:
		return t
	case QuadIn:
		return t * t
	case QuadOut:
		return 1 - (1-t)*(1-t)
	case QuadInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	case CubicIn:
		return t * t * t
	case CubicOut:
		return 1 - math.Pow(1-t, 3)
	case CubicInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	case QuartIn:
		return t * t * t * t
	case QuartOut:
		return 1 - math.Pow(1-t, 4)
	case QuartInOut:
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 4)/2
	case SineIn:
		return 1 - math.Cos(t*math.Pi/2)
	case SineOut:
		return math.Sin(t * math.Pi / 2)
	case SineInOut:
		return -(math.Cos(math.Pi*t) - 1) / 2
	case ExpoIn:
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*t-10)
	case ExpoOut:
		if t == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	case ExpoInOut:
		switch {
		case t == 0:
			return 0
		case t == 1:
			return 1
		case t < 0.5:
			return math.Pow(2, 20*t-10) / 2
		default:
			return (2 - math.Pow(2, -20*t+10)) / 2
		}
	case CircIn:
		return 1 - math.Sqrt(1-t*t)
	case CircOut:
		return math.Sqrt(1 - (t-1)*(t-1))
	case CircInOut:
		if t < 0.5 {
			return (1 - math.Sqrt(1-4*t*t)) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
	case BackIn:
		s := p.Overshoot
		return t * t * ((s+1)*t - s)
	case BackOut:
		s := p.Overshoot
		u := t - 1
		return 1 + u*u*((s+1)*u+s)
	case BackInOut:
		s := p.Overshoot * 1.525
		if t < 0.5 {
			return (math.Pow(2*t, 2) * ((s+1)*2*t - s)) / 2
		}
		return (math.Pow(2*t-2, 2)*((s+1)*(2*t-2)+s) + 2) / 2
	case ElasticIn:
		return elasticIn(t, p)
	case ElasticOut:
		return elasticOut(t, p)
	case ElasticInOut:
		return elasticInOut(t, p)
	case BounceOut, Bounce:
		return bounceOut(t)
	case BounceIn:
		return 1 - bounceOut(1-t)
	case BounceInOut:
		if t < 0.5 {
			return (1 - bounceOut(1-2*t)) / 2
		}
		return (1 + bounceOut(2*t-1)) / 2
	case SmoothStep:
		return t * t * (3 - 2*t)
	case SmootherStep:
		return t * t * t * (t*(6*t-15) + 10)
	case Pulse:
		d := math.Abs(t - p.Center)
		if d < p.Width {
			return 1 - d/p.Width
		}
		return 0
	case Spike:
		if t <= 0.5 {
			return 2 * t
		}
		return 2 * (1 - t)
	case Wave:
		return 0.5 + 0.5*math.Sin(2*math.Pi*p.Frequency*t)
	case Sawtooth:
		x := t * p.Frequency
		return 2 * (x - math.Floor(x+0.5))
	case Square:
		if math.Mod(t*p.Frequency, 1) < p.Duty {
			return 1
		}
		return 0
	}
	return t
}

// elastic 振幅与相位
// 公式：s = period/(2π)·asin(1/amplitude)，amplitude=1 时 s = period/4
func elasticShift(p Params) (a, s float64) {
	a = p.Amplitude
	if a < 1 {
		a = 1
		return a, p.Period / 4
	}
	return a, p.Period / (2 * math.Pi) * math.Asin(1/a)
}

func elasticIn(t float64, p Params) float64 {
	if t == 0 || t == 1 {
		return t
	}
	a, s := elasticShift(p)
	return -(a * math.Pow(2, 10*(t-1)) * math.Sin((t-1-s)*2*math.Pi/p.Period))
}

func elasticOut(t float64, p Params) float64 {
	if t == 0 || t == 1 {
		return t
	}
	a, s := elasticShift(p)
	return a*math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/p.Period) + 1
}

func elasticInOut(t float64, p Params) float64 {
	if t == 0 || t == 1 {
		return t
	}
	a, s := elasticShift(p)
	u := 2*t - 1
	if u < 0 {
		return -0.5 * a * math.Pow(2, 10*u) * math.Sin((u-s)*2*math.Pi/p.Period)
	}
	return a*math.Pow(2, -10*u)*math.Sin((u-s)*2*math.Pi/p.Period)*0.5 + 1
}

// bounceOut 标准四段弹跳多项式
func bounceOut(t float64) float64 {
	const n, d = 7.5625, 2.75
	switch {
	case t < 1/d:
		return n * t * t
	case t < 2/d:
		t -= 1.5 / d
		return n*t*t + 0.75
	case t < 2.5/d:
		t -= 2.25 / d
		return n*t*t + 0.9375
	default:
		t -= 2.625 / d
		return n*t*t + 0.984375
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
