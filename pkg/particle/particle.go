// Package particle 定义粒子的数据模型与虚生命周期。
//
// 每个粒子变体嵌入 Base 并按需覆盖生命周期方法；管理器只持有
// Particle 接口，因此同一个阶段桶里可以混放不同变体。
package particle

import (
	"image"
	"math"

	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// Particle 粒子生命周期接口
type Particle interface {
	// Core 返回共享的物理状态
	Core() *Base

	SetDefaults()

	// PreStep 返回 false 时本步跳过 Step/PostStep
	PreStep() bool
	Step()
	PostStep()

	// PreDraw 返回 false 时跳过默认的 Draw
	PreDraw(c render.Canvas, light types.Color) bool
	Draw(c render.Canvas, light types.Color)
	PostDraw(c render.Canvas, light types.Color)

	Kill()
	// OnKill 销毁钩子，每个实例最多执行一次
	OnKill()
	Alive() bool
}

// Base 粒子的共享状态与默认行为
type Base struct {
	Position    types.Vec2
	Velocity    types.Vec2
	OldPosition types.Vec2
	OldVelocity types.Vec2

	Rotation        float64
	AngularVelocity float64
	OldRotation     float64

	Scale         float64
	Width, Height float64

	// TimeLeft 剩余寿命（模拟步）
	TimeLeft int
	// MaxTimeLeft 初始寿命
	MaxTimeLeft int

	Alpha float64
	Color types.Color
	Stage stage.Stage

	UseLighting bool
	// TileCollide 碰撞参与标记，图块碰撞由宿主世界处理
	TileCollide bool
	Active      bool
	// CullOffscreen 离开视口后自动销毁
	CullOffscreen bool

	// Kind 调用方定义的类型标签
	Kind int

	FrameCounter int
	Frame        int

	Direction       int
	SpriteDirection int

	// Light 自发光强度，大于 0 时每步向光照网格叠加 LightColor × Light
	Light      float64
	LightColor types.Color

	// State 子类状态机槽位
	State int

	// Texture 默认 Draw 使用的图片
	Texture render.Image
	// Source 图片源矩形，nil 表示整张图
	Source *image.Rectangle

	self     Particle
	env      *Env
	tornDown bool
}

// Bind 把粒子绑定到自身与运行环境。
// Base 的默认行为（Kill 调用 OnKill 等）通过绑定的外层变体分派。
func Bind(p Particle, env *Env) {
	b := p.Core()
	b.self = p
	if env != nil {
		b.env = env
	}
}

// Teardown 执行粒子的销毁钩子，同一实例只执行一次
func Teardown(p Particle) {
	b := p.Core()
	if b.tornDown {
		return
	}
	b.tornDown = true
	p.OnKill()
}

// Core 实现 Particle
func (b *Base) Core() *Base { return b }

// Self 返回绑定的外层变体（未绑定时为 nil）
func (b *Base) Self() Particle { return b.self }

// Env 返回绑定的运行环境（未绑定时为 nil）
func (b *Base) Env() *Env { return b.env }

// TornDown 销毁钩子是否已执行
func (b *Base) TornDown() bool { return b.tornDown }

// SetDefaults 重置基础属性
func (b *Base) SetDefaults() {
	b.Width = 16
	b.Height = 16
	b.TimeLeft = 60
	b.MaxTimeLeft = 60
	b.Scale = 1
	b.Alpha = 1
	b.Color = types.White
	b.Active = true
	b.Direction = 1
	b.SpriteDirection = 1
	b.LightColor = types.White
	if b.Stage == stage.None {
		b.Stage = stage.AfterDust
	}
}

func (b *Base) PreStep() bool { return true }

// Step 默认运动：记录上一步状态，积分旋转与位置，寿命递减，到期销毁
func (b *Base) Step() {
	b.OldPosition = b.Position
	b.OldVelocity = b.Velocity
	b.OldRotation = b.Rotation

	b.Rotation += b.AngularVelocity
	b.Position = b.Position.Add(b.Velocity)

	b.TimeLeft--
	if b.TimeLeft <= 0 {
		b.kill()
	}
}

// PostStep 离屏剔除
func (b *Base) PostStep() {
	if b.ShouldCull() && !b.OnScreen() {
		b.kill()
	}
}

// ShouldCull 是否参与离屏剔除（界面阶段永不剔除）
func (b *Base) ShouldCull() bool {
	return b.CullOffscreen && !b.Stage.IsInterface()
}

// OnScreen 包围盒加留白是否与视口相交
func (b *Base) OnScreen() bool {
	if b.env == nil || b.env.Camera == nil {
		return true
	}
	sp := b.Position.Sub(b.env.Camera.ScreenPosition())
	size := b.env.Camera.ScreenSize()
	margin := math.Max(b.Width, b.Height)*b.Scale + b.env.CullMargin
	return sp.X > -margin && sp.X < size.X+margin &&
		sp.Y > -margin && sp.Y < size.Y+margin
}

// DrawPosition 世界坐标到屏幕坐标：液体层加离屏偏移，非界面层减去摄像机滚动
func (b *Base) DrawPosition() types.Vec2 {
	pos := b.Position
	if b.Stage == stage.BeforeLiquids && b.env != nil {
		pos = pos.Add(types.V(b.env.OffscreenRange, b.env.OffscreenRange))
	}
	if !b.Stage.IsInterface() {
		pos = pos.Sub(b.env.screenPosition())
	}
	return pos
}

// DrawColor 着色 × 光照，再乘以透明度
func (b *Base) DrawColor(light types.Color) types.Color {
	c := b.Color.Mul(light)
	c.A *= b.Alpha
	return c
}

func (b *Base) PreDraw(c render.Canvas, light types.Color) bool { return true }

// Draw 以中心为原点绘制 Texture
func (b *Base) Draw(c render.Canvas, light types.Color) {
	if b.Texture == nil {
		return
	}
	origin := render.ImageCenter(b.Texture)
	if b.Source != nil {
		origin = types.V(float64(b.Source.Dx())/2, float64(b.Source.Dy())/2)
	}
	c.Draw(b.Texture, &render.DrawOptions{
		Position: b.DrawPosition(),
		Origin:   origin,
		Rotation: b.Rotation,
		Scale:    types.V(b.Scale, b.Scale),
		Color:    b.DrawColor(light),
		FlipH:    b.SpriteDirection == -1,
		Source:   b.Source,
	})
}

func (b *Base) PostDraw(c render.Canvas, light types.Color) {}

// Kill 标记为失活并执行销毁钩子
func (b *Base) Kill() {
	b.kill()
}

func (b *Base) kill() {
	b.Active = false
	if b.self != nil {
		Teardown(b.self)
	}
}

func (b *Base) OnKill() {}

// Alive 激活且寿命未耗尽
func (b *Base) Alive() bool {
	return b.Active && b.TimeLeft > 0
}

// LifeRatio 已消耗寿命的比例（0 刚生成，1 到期）
func (b *Base) LifeRatio() float64 {
	if b.MaxTimeLeft <= 0 {
		return 1
	}
	r := 1 - float64(b.TimeLeft)/float64(b.MaxTimeLeft)
	return math.Max(0, math.Min(1, r))
}
