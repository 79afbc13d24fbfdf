package effect

import (
	"math"
	"math/rand"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/types"
)

// Layer 效果层：效果粒子中一张独立动画的子图
//
// 缩放、旋转按 基础值 + 速度 × 有效帧 × 曲线乘数 漂移，
// 透明度同样漂移但不低于 0；颜色只能由自定义函数驱动。
type Layer struct {
	// ImageRef 图片引用，SetDefaults 时经 Env.Images 解析
	ImageRef string
	// Image 已解析的图片，为 nil 时本层不绘制
	Image render.Image
	Blend render.BlendMode

	BaseColor    types.Color
	BaseScale    float64
	BaseScaleVec types.Vec2
	BaseOpacity  float64
	BaseRotation float64

	ScaleSpeed    float64
	OpacitySpeed  float64
	RotationSpeed float64

	PositionOffset types.Vec2
	PositionSpeed  types.Vec2

	ScaleCurve    Curve
	OpacityCurve  Curve
	RotationCurve Curve
	ColorCurve    ColorCurve

	// ScaleVecFunc 自定义二维缩放
	ScaleVecFunc func(progress float64) types.Vec2
	// PositionFunc 自定义位置偏移（绝对值，替代 PositionOffset）
	PositionFunc func(progress float64) types.Vec2

	// StartFrame 起始帧
	StartFrame int
	// EndFrame 结束帧，-1 表示跟随粒子完整寿命
	EndFrame int
	Loop     bool

	// Seed 每个实例初始化时随机生成，自定义函数可用于错开相同的层
	Seed float64

	scale    float64
	scaleVec types.Vec2
	opacity  float64
	rotation float64
	color    types.Color
	position types.Vec2

	initialized bool
	updated     bool
}

// NewLayer 返回带默认值的层：白色、不透明、缩放 1、跟随完整寿命
func NewLayer(imageRef string) *Layer {
	return &Layer{
		ImageRef:     imageRef,
		BaseColor:    types.White,
		BaseScale:    1,
		BaseScaleVec: types.V(1, 1),
		BaseOpacity:  1,
		EndFrame:     -1,
	}
}

// Initialize 把基础值复制为当前值，只有首次调用生效
func (l *Layer) Initialize() {
	if l.initialized {
		return
	}
	l.scale = l.BaseScale
	l.scaleVec = l.BaseScaleVec
	l.opacity = l.BaseOpacity
	l.rotation = l.BaseRotation
	l.color = l.BaseColor
	l.position = l.PositionOffset
	l.Seed = rand.Float64()
	l.initialized = true
}

// InWindow 当前帧是否处于激活窗口内
func (l *Layer) InWindow(frame int) bool {
	if frame < l.StartFrame {
		return false
	}
	if l.EndFrame > 0 && frame > l.EndFrame {
		return false
	}
	return true
}

// Update 按当前帧重新计算动画值。
// 窗口之外为空操作：当前值保持不变，本步不标记为已更新。
func (l *Layer) Update(frame, timeLeft, totalFrames int) {
	if !l.InWindow(frame) {
		return
	}

	effectiveFrame := float64(frame - l.StartFrame)
	var effectiveMax float64
	if l.EndFrame > 0 {
		effectiveMax = float64(l.EndFrame - l.StartFrame)
	} else {
		effectiveMax = float64(totalFrames - l.StartFrame)
	}
	if effectiveMax <= 0 {
		return
	}

	progress := effectiveFrame / effectiveMax
	if l.Loop && progress > 1 {
		progress = math.Mod(progress, 1)
	}
	progress = clamp01(progress)

	if l.ScaleCurve.IsCustom() {
		l.scale = l.ScaleCurve.Func(progress)
	} else {
		l.scale = l.BaseScale + l.ScaleSpeed*effectiveFrame*l.ScaleCurve.Eval(progress)
	}

	if l.OpacityCurve.IsCustom() {
		l.opacity = clamp01(l.OpacityCurve.Func(progress))
	} else {
		l.opacity = math.Max(0, l.BaseOpacity+l.OpacitySpeed*effectiveFrame*l.OpacityCurve.Eval(progress))
	}

	if l.RotationCurve.IsCustom() {
		l.rotation = l.RotationCurve.Func(progress)
	} else {
		l.rotation = l.BaseRotation + l.RotationSpeed*effectiveFrame*l.RotationCurve.Eval(progress)
	}

	if l.ColorCurve.Func != nil {
		l.color = l.ColorCurve.Func(progress).Clamp()
	} else {
		l.color = l.BaseColor
	}

	if l.ScaleVecFunc != nil {
		l.scaleVec = l.ScaleVecFunc(progress)
	} else {
		l.scaleVec = l.BaseScaleVec
	}

	if l.PositionFunc != nil {
		l.position = l.PositionFunc(progress)
	} else {
		l.position = l.PositionOffset.Add(l.PositionSpeed.Scale(effectiveFrame))
	}

	l.updated = true
}

// Visible 本层在 frame 时是否应当绘制
func (l *Layer) Visible(frame int) bool {
	return l.updated && l.Image != nil && l.InWindow(frame) && l.opacity > 0
}

func (l *Layer) Scale() float64 { return l.scale }
func (l *Layer) ScaleVec() types.Vec2 { return l.scaleVec }
func (l *Layer) Opacity() float64 { return l.opacity }
func (l *Layer) Rotation() float64 { return l.rotation }
func (l *Layer) Color() types.Color { return l.color }
func (l *Layer) Position() types.Vec2 { return l.position }
func (l *Layer) Initialized() bool { return l.initialized }
func (l *Layer) Updated() bool { return l.updated }
func (l *Layer) resetUpdated() { l.updated = false }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
