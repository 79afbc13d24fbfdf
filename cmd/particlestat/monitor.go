package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/decker502/stagefx/internal/termview"
	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/systems"
	"github.com/decker502/stagefx/pkg/types"
)

// 每个终端单元代表的屏幕像素
const (
	cellWidth  = 8
	cellHeight = 16
)

// headerRows 状态栏占用的行数
const headerRows = 2

// viewport 固定在原点的视口
type viewport struct {
	size types.Vec2
}

func (v *viewport) ScreenPosition() types.Vec2 { return types.Vec2{} }
func (v *viewport) ScreenSize() types.Vec2     { return v.size }

// monitor 无窗口的粒子宿主：阶段注册表 + 粒子管理器 + 终端画布
type monitor struct {
	library   *config.EffectLibrary
	names     []string
	hooks     *stage.Hooks
	particles *systems.ParticleManager
	canvas    *termview.Canvas
	view      *viewport
	rng       *rand.Rand

	// interval 自动爆发的间隔（模拟步），0 表示关闭
	interval int
	paused   bool
	ticks    uint64

	bursts   int
	rejected int
	lastName string

	// onBurst 每次成功生成后调用（播放提示音）
	onBurst func(name string)
}

func newMonitor(cfg *config.ManagerConfig, lib *config.EffectLibrary, cols, rows int, seed uint64) (*monitor, error) {
	if len(lib.Names()) == 0 {
		return nil, fmt.Errorf("effect library is empty")
	}
	m := &monitor{
		library:  lib,
		names:    lib.Names(),
		hooks:    stage.NewHooks(),
		canvas:   termview.NewCanvas(cols, rows, cellWidth, cellHeight),
		view:     &viewport{},
		rng:      rand.New(rand.NewPCG(seed, seed^0x5f3759df)),
		interval: 20,
	}
	m.canvas.SetBackground(types.RGBA8(12, 12, 20, 255))
	m.view.size = m.canvas.Size()

	env := particle.DefaultEnv()
	env.Camera = m.view
	env.Images = termview.NewGlyphs(0)

	m.particles = systems.NewParticleManager(cfg, env)
	m.particles.SetCanvas(m.canvas)
	if err := m.particles.Attach(m.hooks); err != nil {
		return nil, err
	}
	return m, nil
}

// resize 终端尺寸变化后调整网格与视口
func (m *monitor) resize(cols, rows int) {
	m.canvas.Resize(cols, rows)
	m.view.size = m.canvas.Size()
}

// step 执行一个模拟步
func (m *monitor) step() {
	if m.paused {
		return
	}
	if m.interval > 0 && m.ticks%uint64(m.interval) == 0 {
		m.burst()
	}
	m.hooks.Update()
	m.ticks++
}

// burst 在视口内随机位置生成一个随机预设
func (m *monitor) burst() bool {
	size := m.view.size
	pos := types.V(size.X*(0.1+0.8*m.rng.Float64()), size.Y*(0.1+0.8*m.rng.Float64()))
	return m.spawn(m.names[m.rng.IntN(len(m.names))], pos)
}

func (m *monitor) spawn(name string, pos types.Vec2) bool {
	p, err := m.library.New(name)
	if err != nil {
		return false
	}
	if !systems.SpawnParticle(m.particles, p, systems.SpawnOptions{Position: pos}) {
		m.rejected++
		return false
	}
	m.bursts++
	m.lastName = name
	if m.onBurst != nil {
		m.onBurst(name)
	}
	return true
}

// adjustInterval 调整自动爆发间隔，不低于 1
func (m *monitor) adjustInterval(delta int) {
	m.interval = max(m.interval+delta, 1)
}

// draw 栅格化全部可视阶段
func (m *monitor) draw() {
	m.canvas.Clear()
	m.hooks.DrawAll()
}

// statusLines 状态栏文字
func (m *monitor) statusLines() [headerRows]string {
	pm := m.particles
	stats := m.canvas.Stats()
	state := "running"
	if m.paused {
		state = "paused"
	}
	return [headerRows]string{
		fmt.Sprintf("Particles: %d/%d  Pending: %d  Faults: %d  Bursts: %d  Rejected: %d  Every: %d  Tick: %d  [%s]",
			pm.Count(), pm.Capacity(), pm.Pending(), pm.Faults(), m.bursts, m.rejected, m.interval, m.ticks, state),
		fmt.Sprintf("Draws: %d  Clipped: %d  Switches: %d  Stages: %s",
			stats.Draws, stats.Clipped, stats.Switches, stage.Summary(pm.StageCounts())),
	}
}
