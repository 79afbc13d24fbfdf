package systems

import (
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/types"
)

// SpawnOptions 生成粒子时覆盖的初始属性
type SpawnOptions struct {
	Position types.Vec2
	Velocity types.Vec2
	Kind     int
	// Alpha 初始透明度，0 表示使用变体默认值
	Alpha float64
	// Scale 初始缩放，0 表示使用变体默认值
	Scale float64
}

// Spawn 构造一个 T 类型的粒子并尝试加入管理器。
// 无论是否被接纳都返回实例，调用方可以继续配置；只有被接纳的粒子参与模拟，
// 已达容量上限时返回的实例不会被管理器持有。
//
// 位置与速度在 SetDefaults 之前写入，变体的初始化逻辑可以读取生成位置；
// 类型标签、透明度、缩放在 SetDefaults 之后覆盖。
func Spawn[T any, P interface {
	*T
	particle.Particle
}](m *ParticleManager, opts SpawnOptions) P {
	p := P(new(T))
	SpawnParticle(m, p, opts)
	return p
}

// SpawnParticle 初始化一个已构造的粒子（如带自定义设计器的特效粒子）并加入管理器
func SpawnParticle(m *ParticleManager, p particle.Particle, opts SpawnOptions) bool {
	if isNil(p) {
		return false
	}
	particle.Bind(p, m.env)

	b := p.Core()
	b.Position = opts.Position
	b.Velocity = opts.Velocity

	p.SetDefaults()

	b.Kind = opts.Kind
	if opts.Alpha > 0 {
		b.Alpha = opts.Alpha
	}
	if opts.Scale > 0 {
		b.Scale = opts.Scale
	}
	b.MaxTimeLeft = b.TimeLeft
	return m.Add(p)
}
