package particle

import (
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// TwistCircle 屏幕扭曲圆环。
// 位于非可视的 Twist 阶段，只为扭曲后处理提供参数，自身从不绘制。
type TwistCircle struct {
	Base

	Size     float64
	Strength float64
	// Duration 扩散持续步数
	Duration int
	Timer    int
	// Inverse 由外向内收缩
	Inverse bool

	// ImageAlpha 扭曲强度输出
	ImageAlpha float64
	// ImageScale 圆环尺寸输出
	ImageScale float64
}

func (tc *TwistCircle) SetDefaults() {
	tc.Base.SetDefaults()
	tc.Stage = stage.Twist
	tc.Size = 1.4
	tc.Strength = 0.1
	tc.Duration = 30
	tc.Timer = 0
	tc.ImageScale = 1
}

// Step 推进扩散进度
func (tc *TwistCircle) Step() {
	tc.Timer++
	duration := tc.Duration
	if duration <= 0 {
		duration = 1
	}
	rate := float64(tc.Timer) / float64(duration)
	if tc.Inverse {
		rate = 1 - rate
	}
	tc.ImageAlpha = (1 - rate) * tc.Strength * 6
	tc.ImageScale = rate * tc.Size * 1.2

	if tc.Timer >= duration {
		tc.Kill()
	}
}

func (tc *TwistCircle) PreDraw(c render.Canvas, light types.Color) bool { return false }
