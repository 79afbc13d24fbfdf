package effect

import (
	"math"
	"testing"

	"github.com/decker502/stagefx/pkg/easing"
	"github.com/decker502/stagefx/pkg/types"
)

const eps = 1e-9

func initLayer(l *Layer) *Layer {
	l.Initialize()
	return l
}

// TestLayerWindowNoop 激活窗口之外 Update 不改变任何动画值
func TestLayerWindowNoop(t *testing.T) {
	l := NewLayer("x")
	l.StartFrame = 5
	l.EndFrame = 10
	l.ScaleSpeed = 1
	l.OpacitySpeed = -0.1
	l.PositionSpeed = types.V(1, 1)
	initLayer(l)

	for _, frame := range []int{0, 4, 11, 50} {
		l.Update(frame, 0, 100)
		if l.Updated() {
			t.Errorf("frame %d: 窗口外不应标记为已更新", frame)
		}
		if l.Scale() != 1 || l.Opacity() != 1 || l.Position() != (types.Vec2{}) {
			t.Errorf("frame %d: 窗口外数值被修改 scale=%v opacity=%v pos=%v",
				frame, l.Scale(), l.Opacity(), l.Position())
		}
	}

	// EndFrame = -1 时只有起始帧之前为空操作
	l2 := initLayer(NewLayer("x"))
	l2.StartFrame = 3
	l2.ScaleSpeed = 1
	l2.Update(2, 0, 10)
	if l2.Updated() || l2.Scale() != 1 {
		t.Error("起始帧之前应为空操作")
	}
	l2.Update(500, 0, 10)
	if !l2.Updated() {
		t.Error("EndFrame=-1 时起始帧之后都在窗口内")
	}
}

func TestLayerUpdateFormulas(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *Layer)
		frame int
		total int
		check func(t *testing.T, l *Layer)
	}{
		{
			name: "缩放漂移乘以曲线",
			setup: func(l *Layer) {
				l.ScaleSpeed = 0.1
				l.ScaleCurve = Named(easing.QuadIn)
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				// 1 + 0.1 × 5 × 0.25
				if math.Abs(l.Scale()-1.125) > eps {
					t.Errorf("scale = %v, 期望 1.125", l.Scale())
				}
			},
		},
		{
			name: "旋转漂移",
			setup: func(l *Layer) {
				l.BaseRotation = 1
				l.RotationSpeed = 0.2
			},
			frame: 10, total: 10,
			check: func(t *testing.T, l *Layer) {
				if math.Abs(l.Rotation()-3) > eps {
					t.Errorf("rotation = %v, 期望 3", l.Rotation())
				}
			},
		},
		{
			name: "透明度下限为零",
			setup: func(l *Layer) {
				l.OpacitySpeed = -1
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.Opacity() != 0 {
					t.Errorf("opacity = %v, 期望 0", l.Opacity())
				}
			},
		},
		{
			name: "自定义透明度被钳制",
			setup: func(l *Layer) {
				l.OpacityCurve = CustomCurve(func(p float64) float64 { return 3 })
			},
			frame: 1, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.Opacity() != 1 {
					t.Errorf("opacity = %v, 期望 1", l.Opacity())
				}
			},
		},
		{
			name: "自定义缩放优先于命名曲线",
			setup: func(l *Layer) {
				l.ScaleSpeed = 100
				l.ScaleCurve = Curve{Kind: easing.BounceOut, Func: func(p float64) float64 { return p * 4 }}
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				if math.Abs(l.Scale()-2) > eps {
					t.Errorf("scale = %v, 期望 2", l.Scale())
				}
			},
		},
		{
			name: "命名颜色曲线不生效",
			setup: func(l *Layer) {
				l.BaseColor = types.Color{R: 1, G: 0, B: 0, A: 1}
				l.ColorCurve = ColorCurve{Kind: easing.QuadIn}
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.Color() != (types.Color{R: 1, G: 0, B: 0, A: 1}) {
					t.Errorf("color = %+v, 应保持基础色", l.Color())
				}
			},
		},
		{
			name: "自定义颜色被钳制",
			setup: func(l *Layer) {
				l.ColorCurve = CustomColor(func(p float64) types.Color {
					return types.Color{R: 2, G: p, B: -1, A: 1}
				})
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				want := types.Color{R: 1, G: 0.5, B: 0, A: 1}
				if l.Color() != want {
					t.Errorf("color = %+v, 期望 %+v", l.Color(), want)
				}
			},
		},
		{
			name: "位置按速度漂移",
			setup: func(l *Layer) {
				l.PositionOffset = types.V(10, 0)
				l.PositionSpeed = types.V(1, -2)
			},
			frame: 4, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.Position() != types.V(14, -8) {
					t.Errorf("position = %v", l.Position())
				}
			},
		},
		{
			name: "自定义位置为绝对偏移",
			setup: func(l *Layer) {
				l.PositionOffset = types.V(10, 0)
				l.PositionFunc = func(p float64) types.Vec2 { return types.V(p, p) }
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.Position() != types.V(0.5, 0.5) {
					t.Errorf("position = %v", l.Position())
				}
			},
		},
		{
			name: "自定义二维缩放",
			setup: func(l *Layer) {
				l.ScaleVecFunc = func(p float64) types.Vec2 { return types.V(2, p) }
			},
			frame: 5, total: 10,
			check: func(t *testing.T, l *Layer) {
				if l.ScaleVec() != types.V(2, 0.5) {
					t.Errorf("scaleVec = %v", l.ScaleVec())
				}
			},
		},
		{
			name: "循环进度取模",
			setup: func(l *Layer) {
				l.Loop = true
				l.EndFrame = -1
				l.OpacityCurve = CustomCurve(func(p float64) float64 { return p })
			},
			frame: 15, total: 10,
			check: func(t *testing.T, l *Layer) {
				if math.Abs(l.Opacity()-0.5) > eps {
					t.Errorf("opacity = %v, 期望 0.5", l.Opacity())
				}
			},
		},
		{
			name: "结束帧决定有效长度",
			setup: func(l *Layer) {
				l.StartFrame = 2
				l.EndFrame = 6
				l.OpacityCurve = CustomCurve(func(p float64) float64 { return p })
			},
			frame: 4, total: 100,
			check: func(t *testing.T, l *Layer) {
				if math.Abs(l.Opacity()-0.5) > eps {
					t.Errorf("opacity = %v, 期望 0.5", l.Opacity())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer("x")
			tt.setup(l)
			l.Initialize()
			l.Update(tt.frame, 0, tt.total)
			if !l.Updated() {
				t.Fatal("窗口内应标记为已更新")
			}
			tt.check(t, l)
		})
	}
}

func TestLayerEffectiveMaxZero(t *testing.T) {
	l := initLayer(NewLayer("x"))
	l.StartFrame = 10
	l.ScaleSpeed = 1
	l.Update(12, 0, 10) // total - start = 0
	if l.Updated() || l.Scale() != 1 {
		t.Error("有效长度为 0 时应为空操作")
	}
}

func TestLayerInitializeOnce(t *testing.T) {
	l := NewLayer("x")
	l.BaseOpacity = 0.3
	l.Initialize()
	seed := l.Seed
	l.BaseOpacity = 0.9
	l.Initialize()
	if l.Opacity() != 0.3 || l.Seed != seed {
		t.Error("Initialize 只应在首次调用时生效")
	}
	if !l.Initialized() {
		t.Error("应标记为已初始化")
	}
}
