package systems

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// Phase 粒子故障发生的阶段
type Phase string

const (
	PhaseStep Phase = "step"
	PhaseDraw Phase = "draw"
)

// Fault 单个粒子在模拟或绘制时发生的故障
type Fault struct {
	Particle particle.Particle
	Stage    stage.Stage
	Phase    Phase
	Err      error
}

func (f Fault) Error() string {
	return fmt.Sprintf("particle %T in %v failed during %s: %v", f.Particle, f.Stage, f.Phase, f.Err)
}

func (f Fault) Unwrap() error { return f.Err }

// FaultHandler 故障上报回调
type FaultHandler func(f Fault)

// ParticleManager 粒子管理器
//
// 按绘制阶段分桶保存粒子，限制全局容量，每个模拟步推进全部粒子，
// 并在宿主通知某个阶段时绘制该阶段的桶。
//
// 单个粒子的故障（panic）只影响它自己：模拟时故障的粒子被销毁并移除，
// 绘制时故障的粒子被 Kill，下一步移除。
type ParticleManager struct {
	buckets [stage.Count][]particle.Particle
	pending []particle.Particle

	maxParticles int
	count        int

	env    *particle.Env
	canvas render.Canvas

	hooks   *stage.Hooks
	handles []stage.Handle

	// iterating Update/Render 正在遍历桶的层数，期间不改动桶切片
	iterating int
	moves     []move
	// sweep 遍历中发生了清空，模拟步末移除已失活的粒子
	sweep bool

	// OnFault 故障回调，为 nil 时按配置决定是否写日志
	OnFault   FaultHandler
	logFaults bool
	faults    int
}

type move struct {
	p  particle.Particle
	to stage.Stage
}

// NewParticleManager 创建粒子管理器
// cfg 为 nil 时使用默认配置；env 为 nil 时按配置创建
func NewParticleManager(cfg *config.ManagerConfig, env *particle.Env) *ParticleManager {
	if cfg == nil {
		cfg = config.DefaultManagerConfig()
	}
	if env == nil {
		env = particle.DefaultEnv()
	}
	env.CullMargin = cfg.CullMargin
	env.OffscreenRange = cfg.OffscreenRange
	env.LightCellSize = cfg.LightCellSize

	return &ParticleManager{
		maxParticles: cfg.MaxParticles,
		env:          env,
		logFaults:    cfg.LogFaults,
	}
}

// Env 返回粒子运行环境
func (m *ParticleManager) Env() *particle.Env { return m.env }

// SetCanvas 设置 Render 的绘制目标
func (m *ParticleManager) SetCanvas(c render.Canvas) { m.canvas = c }

// Count 存活粒子数（含待加入队列）
func (m *ParticleManager) Count() int { return m.count }

// Capacity 容量上限
func (m *ParticleManager) Capacity() int { return m.maxParticles }

// SetCapacity 调整容量上限，降低上限不会驱逐已有粒子
func (m *ParticleManager) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	m.maxParticles = n
}

// Faults 累计隔离的故障数
func (m *ParticleManager) Faults() int { return m.faults }

// Add 接纳一个已构造的粒子。
// 粒子为 nil、阶段无效或已达容量上限时返回 false。
func (m *ParticleManager) Add(p particle.Particle) bool {
	if isNil(p) {
		return false
	}
	if m.count >= m.maxParticles {
		return false
	}
	b := p.Core()
	if !b.Stage.Valid() {
		return false
	}
	particle.Bind(p, m.env)
	if b.MaxTimeLeft < b.TimeLeft {
		b.MaxTimeLeft = b.TimeLeft
	}
	m.pending = append(m.pending, p)
	m.count++
	return true
}

// ChangeStage 把粒子移动到另一个阶段桶。
// 仍在待加入队列中的粒子直接修改阶段；目标阶段无效、与当前相同
// 或找不到粒子时返回 false 且不做任何修改。
func (m *ParticleManager) ChangeStage(p particle.Particle, s stage.Stage) bool {
	if isNil(p) {
		return false
	}
	b := p.Core()
	if b.Stage == s {
		return false
	}
	target, ok := m.bucket(s)
	if !ok {
		return false
	}

	for _, q := range m.pending {
		if q == p {
			b.Stage = s
			return true
		}
	}

	from, ok := m.bucket(b.Stage)
	if !ok {
		return false
	}
	idx := indexOf(*from, p)
	if idx < 0 {
		return false
	}
	if m.iterating > 0 {
		// 遍历中不改动桶，遍历结束后统一迁移
		m.moves = append(m.moves, move{p: p, to: s})
		return true
	}
	*from = removeAt(*from, idx)
	*target = append(*target, p)
	b.Stage = s
	return true
}

// ClearStage 销毁指定阶段的全部粒子
func (m *ParticleManager) ClearStage(s stage.Stage) {
	bucket, ok := m.bucket(s)
	if !ok {
		return
	}
	if m.iterating > 0 {
		// 遍历中只标记失活，由下一个模拟步统一移除
		for _, p := range *bucket {
			m.killSafely(p)
		}
		m.sweep = true
		return
	}
	for _, p := range *bucket {
		m.teardown(p)
	}
	clear(*bucket)
	*bucket = (*bucket)[:0]
	m.recount()
}

// ClearAll 销毁全部粒子（含待加入队列），用于场景切换
func (m *ParticleManager) ClearAll() {
	if m.iterating > 0 {
		for _, bucket := range m.buckets {
			for _, p := range bucket {
				m.killSafely(p)
			}
		}
		m.dropPending()
		clear(m.moves)
		m.moves = m.moves[:0]
		m.sweep = true
		return
	}
	for i := range m.buckets {
		for _, p := range m.buckets[i] {
			m.teardown(p)
		}
		clear(m.buckets[i])
		m.buckets[i] = m.buckets[i][:0]
	}
	m.dropPending()
	m.count = 0
}

// dropPending 销毁并丢弃待加入队列
func (m *ParticleManager) dropPending() {
	for _, p := range m.pending {
		m.teardown(p)
	}
	clear(m.pending)
	m.pending = m.pending[:0]
	m.recount()
}

// All 返回全部已加入桶的粒子（副本）
func (m *ParticleManager) All() []particle.Particle {
	var out []particle.Particle
	for _, b := range m.buckets {
		out = append(out, b...)
	}
	return out
}

// InStage 返回指定阶段的粒子（副本）
func (m *ParticleManager) InStage(s stage.Stage) []particle.Particle {
	bucket, ok := m.bucket(s)
	if !ok {
		return nil
	}
	return append([]particle.Particle(nil), (*bucket)...)
}

// Pending 待加入队列长度
func (m *ParticleManager) Pending() int { return len(m.pending) }

// StageCounts 各阶段的粒子数
func (m *ParticleManager) StageCounts() map[stage.Stage]int {
	out := make(map[stage.Stage]int)
	for i, b := range m.buckets {
		if len(b) > 0 {
			out[stage.Stage(i)] = len(b)
		}
	}
	return out
}

// Update 执行一个模拟步
//
//  1. 待加入队列进入各自的阶段桶
//  2. 每个桶逆序遍历：PreStep 通过则 Step/PostStep，不再存活的粒子销毁并移除
//  3. 自发光粒子向光照网格叠加光照
//  4. 重新统计粒子数
func (m *ParticleManager) Update() {
	for _, p := range m.pending {
		s := p.Core().Stage
		if bucket, ok := m.bucket(s); ok {
			*bucket = append(*bucket, p)
			continue
		}
		// 待加入期间阶段只能通过 ChangeStage 修改，不应出现无效阶段
		m.teardown(p)
	}
	clear(m.pending)
	m.pending = m.pending[:0]

	m.iterating++
	for i := range m.buckets {
		s := stage.Stage(i)
		bucket := m.buckets[i]
		for j := len(bucket) - 1; j >= 0; j-- {
			p := bucket[j]
			if p == nil {
				bucket = removeAt(bucket, j)
				continue
			}
			if err := m.step(p); err != nil {
				m.report(Fault{Particle: p, Stage: s, Phase: PhaseStep, Err: err})
				m.teardown(p)
				bucket = removeAt(bucket, j)
				continue
			}
			if !p.Alive() {
				m.teardown(p)
				bucket = removeAt(bucket, j)
			}
		}
		m.buckets[i] = bucket
	}
	m.endIteration()
	if m.sweep {
		m.sweep = false
		m.removeDead()
	}

	m.contributeLight()
	m.env.Ticks++
	m.recount()
}

func (m *ParticleManager) step(p particle.Particle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	if p.Core().Active && p.PreStep() {
		p.Step()
		p.PostStep()
	}
	return nil
}

func (m *ParticleManager) contributeLight() {
	lighting := m.env.Lighting
	if lighting == nil {
		return
	}
	for _, bucket := range m.buckets {
		for _, p := range bucket {
			b := p.Core()
			if b.Light <= 0 || !p.Alive() {
				continue
			}
			x, y := m.env.LightCell(b.Position)
			lighting.AddLight(x, y, b.LightColor.ScaleRGB(b.Light))
		}
	}
}

// Render 绘制指定阶段的粒子，由宿主在该阶段的绘制回调中调用
func (m *ParticleManager) Render(s stage.Stage) {
	if !s.IsVisual() || m.canvas == nil {
		return
	}
	bucket := m.buckets[s]
	if len(bucket) == 0 {
		return
	}
	m.iterating++
	defer m.endIteration()
	for _, p := range bucket {
		if p == nil {
			continue
		}
		mode := m.canvas.Mode()
		if err := m.draw(p); err != nil {
			m.report(Fault{Particle: p, Stage: s, Phase: PhaseDraw, Err: err})
			m.killSafely(p)
			m.restoreMode(mode)
		}
	}
}

// removeDead 移除全部已失活的粒子
func (m *ParticleManager) removeDead() {
	for i, bucket := range m.buckets {
		kept := bucket[:0]
		for _, p := range bucket {
			if p == nil {
				continue
			}
			if !p.Core().Active {
				m.teardown(p)
				continue
			}
			kept = append(kept, p)
		}
		clear(bucket[len(kept):])
		m.buckets[i] = kept
	}
}

// endIteration 最外层遍历结束时执行推迟的迁移
func (m *ParticleManager) endIteration() {
	m.iterating--
	if m.iterating > 0 {
		return
	}
	moves := m.moves
	m.moves = nil
	for _, mv := range moves {
		m.ChangeStage(mv.p, mv.to)
	}
	clear(moves)
	m.moves = moves[:0]
}

// restoreMode 故障粒子切换过的混合模式不能影响后续粒子
func (m *ParticleManager) restoreMode(mode render.BlendMode) {
	defer func() {
		recover()
	}()
	if m.canvas.Mode() != mode {
		m.canvas.Begin(mode)
	}
}

func (m *ParticleManager) draw(p particle.Particle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	if !p.Core().Active {
		return nil
	}
	light := m.lightFor(p.Core())
	if p.PreDraw(m.canvas, light) {
		p.Draw(m.canvas, light)
	}
	p.PostDraw(m.canvas, light)
	return nil
}

func (m *ParticleManager) lightFor(b *particle.Base) types.Color {
	if !b.UseLighting || m.env.Lighting == nil {
		return types.White
	}
	x, y := m.env.LightCell(b.Position)
	return m.env.Lighting.ColorAt(x, y)
}

// killSafely 销毁钩子本身也可能出错，失败时至少保证粒子失活
func (m *ParticleManager) killSafely(p particle.Particle) {
	defer func() {
		if r := recover(); r != nil {
			p.Core().Active = false
		}
	}()
	p.Kill()
}

// teardown 销毁钩子出错时只上报，不中断模拟步
func (m *ParticleManager) teardown(p particle.Particle) {
	defer func() {
		if r := recover(); r != nil {
			m.report(Fault{Particle: p, Stage: p.Core().Stage, Phase: PhaseStep, Err: panicError(r)})
		}
	}()
	particle.Teardown(p)
}

func (m *ParticleManager) report(f Fault) {
	m.faults++
	if m.OnFault != nil {
		m.OnFault(f)
		return
	}
	if m.logFaults {
		log.Printf("[ParticleManager] 粒子故障已隔离: %v", f)
	}
}

// Attach 在宿主注册表上为每个可视阶段注册绘制回调，并注册模拟步回调
func (m *ParticleManager) Attach(h *stage.Hooks) error {
	if m.hooks != nil {
		return fmt.Errorf("failed to attach particle manager: already attached")
	}
	handles := make([]stage.Handle, 0, len(stage.Visual())+1)
	for _, s := range stage.Visual() {
		handle, err := h.Hook(s, m.Render)
		if err != nil {
			for _, hd := range handles {
				h.Unhook(hd)
			}
			return fmt.Errorf("failed to attach particle manager: %w", err)
		}
		handles = append(handles, handle)
	}
	handles = append(handles, h.HookUpdate(m.Update))
	m.hooks = h
	m.handles = handles
	log.Printf("[ParticleManager] 已注册 %d 个阶段绘制回调", len(handles)-1)
	return nil
}

// Detach 注销全部回调并清空粒子
func (m *ParticleManager) Detach() {
	if m.hooks != nil {
		for _, hd := range m.handles {
			m.hooks.Unhook(hd)
		}
		m.hooks = nil
		m.handles = nil
	}
	m.ClearAll()
}

func (m *ParticleManager) bucket(s stage.Stage) (*[]particle.Particle, bool) {
	if !s.Valid() {
		return nil, false
	}
	return &m.buckets[s], true
}

func (m *ParticleManager) recount() {
	n := len(m.pending)
	for _, b := range m.buckets {
		n += len(b)
	}
	m.count = n
}

func indexOf(list []particle.Particle, p particle.Particle) int {
	for i, q := range list {
		if q == p {
			return i
		}
	}
	return -1
}

// removeAt 保序删除
func removeAt(list []particle.Particle, i int) []particle.Particle {
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}

func isNil(p particle.Particle) (null bool) {
	if p == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			null = true
		}
	}()
	return p.Core() == nil
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w\n%s", err, debug.Stack())
	}
	return fmt.Errorf("panic: %v\n%s", r, debug.Stack())
}
