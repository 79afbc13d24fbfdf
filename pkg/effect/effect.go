// Package effect 实现多层动画效果粒子。
//
// 效果粒子没有单一的权威贴图，它的外观由按声明顺序叠加的效果层组成；
// 每一层的缩放、透明度、旋转、颜色和位置各自由曲线或自定义函数驱动。
package effect

import (
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// 效果粒子的默认值
const (
	DefaultSize     = 10
	DefaultLifetime = 120
)

// Designer 声明效果粒子的基础属性和效果层
type Designer interface {
	// SetupParticle 覆盖寿命、尺寸、阶段等粒子属性
	SetupParticle(p *Particle)
	// SetupLayers 通过 AddLayer 声明效果层
	SetupLayers(p *Particle)
}

// DesignFuncs 用函数实现 Designer，任一字段可为 nil
type DesignFuncs struct {
	Particle func(p *Particle)
	Layers   func(p *Particle)
}

func (d DesignFuncs) SetupParticle(p *Particle) {
	if d.Particle != nil {
		d.Particle(p)
	}
}

func (d DesignFuncs) SetupLayers(p *Particle) {
	if d.Layers != nil {
		d.Layers(p)
	}
}

// Particle 效果粒子
//
// 具体效果可以嵌入 Particle 并实现 Designer 的两个方法，
// 也可以直接设置 Design 字段（数据驱动的预设）。
type Particle struct {
	particle.Base

	// Design 显式设计器，为 nil 时使用绑定的外层变体
	Design Designer

	layers           []*Layer
	frame            int
	originalLifetime int

	onStart  listenerList
	onUpdate listenerList
	onDraw   listenerList
	onEnd    listenerList
	endFired bool
}

// New 创建使用指定设计器的效果粒子
func New(d Designer) *Particle {
	return &Particle{Design: d}
}

func (p *Particle) designer() Designer {
	if p.Design != nil {
		return p.Design
	}
	if d, ok := p.Self().(Designer); ok {
		return d
	}
	return nil
}

// AddLayer 追加效果层（追加顺序即绘制顺序）
func (p *Particle) AddLayer(l *Layer) *Layer {
	p.layers = append(p.layers, l)
	return l
}

// Layers 返回效果层
func (p *Particle) Layers() []*Layer { return p.layers }

// Frame 当前帧
func (p *Particle) Frame() int { return p.frame }

// OriginalLifetime 生成时的寿命
func (p *Particle) OriginalLifetime() int { return p.originalLifetime }

// Progress 归一化进度 frame / originalLifetime
func (p *Particle) Progress() float64 {
	if p.originalLifetime <= 0 {
		return 1
	}
	return float64(p.frame) / float64(p.originalLifetime)
}

// SetDefaults 基础默认值 → 设计器覆盖 → 记录寿命 → 声明层 → 解析图片 → 初始化层 → on-start
func (p *Particle) SetDefaults() {
	p.Base.SetDefaults()
	p.Width, p.Height = DefaultSize, DefaultSize
	p.TimeLeft = DefaultLifetime
	p.Stage = stage.BeforeProjectiles

	d := p.designer()
	if d != nil {
		d.SetupParticle(p)
	}
	p.originalLifetime = p.TimeLeft
	p.MaxTimeLeft = p.TimeLeft

	p.layers = nil
	if d != nil {
		d.SetupLayers(p)
	}
	p.resolveImages()
	for _, l := range p.layers {
		l.Initialize()
	}

	p.frame = 0
	p.endFired = false
	p.onStart.fire(p.event())
}

func (p *Particle) resolveImages() {
	env := p.Env()
	if env == nil || env.Images == nil {
		return
	}
	for _, l := range p.layers {
		if l.Image != nil || l.ImageRef == "" {
			continue
		}
		// 解析失败的层保持为空，不绘制
		if img, err := env.Images.Resolve(l.ImageRef); err == nil {
			l.Image = img
		}
	}
}

// Step 推进帧、更新全部层、通知 on-update，再执行基础运动
func (p *Particle) Step() {
	p.frame++
	for _, l := range p.layers {
		l.resetUpdated()
		l.Update(p.frame, p.TimeLeft, p.originalLifetime)
	}
	p.onUpdate.fire(p.event())
	p.Base.Step()
}

// PostStep 寿命走到最后一步（或已被销毁）时通知 on-end，只通知一次
func (p *Particle) PostStep() {
	p.Base.PostStep()
	if !p.endFired && (p.TimeLeft <= 0 || !p.Active) {
		p.endFired = true
		p.onEnd.fire(p.event())
	}
}

// PreDraw 按声明顺序绘制效果层，并接管默认绘制
func (p *Particle) PreDraw(c render.Canvas, light types.Color) bool {
	origin := p.DrawPosition()
	for _, l := range p.layers {
		if !l.Visible(p.frame) {
			continue
		}
		if c.Mode() != l.Blend {
			c.Begin(l.Blend)
		}
		col := l.Color()
		col.A *= l.Opacity() * p.Alpha
		c.Draw(l.Image, &render.DrawOptions{
			Position: origin.Add(l.Position()),
			Origin:   render.ImageCenter(l.Image),
			Rotation: l.Rotation() + p.Rotation,
			Scale:    l.ScaleVec().Scale(l.Scale() * p.Scale),
			Color:    col,
		})
	}
	if c.Mode() != render.AlphaBlend {
		c.Begin(render.AlphaBlend)
	}
	p.onDraw.fire(p.event())
	return false
}

// OnStart 订阅生成通知，返回取消订阅函数
func (p *Particle) OnStart(fn Listener) func() { return p.onStart.add(fn) }

// OnUpdate 订阅每步更新通知
func (p *Particle) OnUpdate(fn Listener) func() { return p.onUpdate.add(fn) }

// OnDraw 订阅绘制通知
func (p *Particle) OnDraw(fn Listener) func() { return p.onDraw.add(fn) }

// OnEnd 订阅结束通知
func (p *Particle) OnEnd(fn Listener) func() { return p.onEnd.add(fn) }

func (p *Particle) event() Event {
	var self particle.Particle = p
	if s := p.Self(); s != nil {
		self = s
	}
	return Event{
		Frame:       p.frame,
		TotalFrames: p.originalLifetime,
		Progress:    p.Progress(),
		Position:    p.Position,
		Particle:    self,
	}
}
