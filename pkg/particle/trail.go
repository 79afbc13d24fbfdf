package particle

import (
	"image"
	"math"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// TrailStyle 拖尾绘制风格
type TrailStyle int

const (
	// TrailStraight 沿历史位置直接绘制
	TrailStraight TrailStyle = iota
	// TrailWave 历史点沿竖直方向叠加随时间流动的正弦扰动
	TrailWave
)

// DefaultTrailLength 默认拖尾长度
const DefaultTrailLength = 50

// Trail 拖尾粒子：记录最近 N 步的位置与旋转，按从旧到新渐显绘制
type Trail struct {
	Base

	// EndColor 拖尾末端（最旧）颜色，nil 表示与 Color 相同
	EndColor *types.Color
	// Blend 拖尾使用的混合模式
	Blend render.BlendMode
	Style TrailStyle
	// Taper 末端缩放比例（1 表示不收窄）
	Taper float64

	positions []types.Vec2
	rotations []float64
	filled    int
}

// SetDefaults 拖尾默认不剔除，绘制在实体之前
func (t *Trail) SetDefaults() {
	t.Base.SetDefaults()
	t.Stage = stage.BeforeEntities
	t.CullOffscreen = false
	t.Blend = render.Additive
	t.Taper = 1
	if t.positions == nil {
		t.SetLength(DefaultTrailLength)
	}
}

// SetUp 一次性配置长度、贴图、源矩形和混合模式
func (t *Trail) SetUp(length int, tex render.Image, src *image.Rectangle, blend render.BlendMode, alpha, scale float64) {
	t.SetLength(length)
	t.Texture = tex
	t.Source = src
	t.Blend = blend
	t.Alpha = alpha
	t.Scale = scale
}

// Length 拖尾容量
func (t *Trail) Length() int { return len(t.positions) }

// Filled 已写入的历史点数
func (t *Trail) Filled() int { return t.filled }

// SetLength 调整拖尾长度，保留 min(旧长度, 新长度) 个最新历史点
func (t *Trail) SetLength(n int) {
	if n < 1 {
		n = 1
	}
	if n == len(t.positions) {
		return
	}
	pos := make([]types.Vec2, n)
	rot := make([]float64, n)
	copy(pos, t.positions)
	copy(rot, t.rotations)
	t.positions, t.rotations = pos, rot
	t.filled = min(t.filled, n)
}

// Point 第 i 个历史点（0 为最新）
func (t *Trail) Point(i int) (types.Vec2, float64) {
	return t.positions[i], t.rotations[i]
}

// Step 历史点后移一格，记录当前位置；拖尾自身不积分速度，
// 位置通常由跟随的宿主对象每步写入（见 Follow）
func (t *Trail) Step() {
	if len(t.positions) == 0 {
		t.SetLength(DefaultTrailLength)
	}
	for i := len(t.positions) - 1; i > 0; i-- {
		t.positions[i] = t.positions[i-1]
		t.rotations[i] = t.rotations[i-1]
	}
	t.positions[0] = t.Position
	t.rotations[0] = t.Rotation
	t.filled = min(t.filled+1, len(t.positions))

	t.TimeLeft--
	if t.TimeLeft <= 0 {
		t.Kill()
	}
}

// Follow 把拖尾头部移动到目标位置，并续命 ttl 步
func (t *Trail) Follow(pos types.Vec2, rotation float64, ttl int) {
	t.Position = pos
	t.Rotation = rotation
	t.TimeLeft = ttl
	if t.MaxTimeLeft < ttl {
		t.MaxTimeLeft = ttl
	}
}

// PreDraw 从最旧到最新绘制历史点，完全接管绘制
func (t *Trail) PreDraw(c render.Canvas, light types.Color) bool {
	if t.Texture == nil || t.filled == 0 {
		return false
	}
	end := t.Color
	if t.EndColor != nil {
		end = *t.EndColor
	}
	origin := render.ImageCenter(t.Texture)
	if t.Source != nil {
		origin = types.V(float64(t.Source.Dx())/2, float64(t.Source.Dy())/2)
	}
	var camera types.Vec2
	if !t.Stage.IsInterface() {
		camera = t.env.screenPosition()
	}
	ticks := 0.0
	if t.env != nil {
		ticks = float64(t.env.Ticks)
	}

	render.WithMode(c, t.Blend, func() {
		n := t.filled
		for i := n - 1; i >= 0; i-- {
			// progress：最新点为 1，最旧点趋近 0
			progress := float64(n-i) / float64(n)
			pos := t.positions[i]
			if t.Style == TrailWave {
				fi := float64(i)
				pos.Y -= fi + math.Pow(fi, 1.6)*0.1 + math.Sin(-ticks*0.12+fi*0.2)*6
			}
			col := end.Lerp(t.Color, progress).Mul(light)
			col.A *= progress * t.Alpha
			s := t.Scale * (t.Taper + (1-t.Taper)*progress)
			c.Draw(t.Texture, &render.DrawOptions{
				Position: pos.Sub(camera),
				Origin:   origin,
				Rotation: t.rotations[i],
				Scale:    types.V(s, s),
				Color:    col,
				Source:   t.Source,
			})
		}
	})
	return false
}
