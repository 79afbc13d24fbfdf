package scenes

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/game"
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/systems"
	"github.com/decker502/stagefx/pkg/types"
)

// 演示世界尺寸
const (
	DemoWorldWidth  = 2048
	DemoWorldHeight = 768

	demoGroundY = 600
	// emberInterval 环境余烬的生成间隔（模拟步）
	emberInterval = 12
	cometTrailTTL = 30
)

// 粒子类型标签
const (
	KindEffect = iota + 1
	KindTrail
	KindMask
	KindTwist
	KindEmber
)

// DemoScene 演示世界：分层绘制的地面与箱子穿插在粒子阶段之间，
// 一颗彗星带着拖尾绕场飞行，点击生成效果、闪屏和扭曲圆环
type DemoScene struct {
	host    *game.Host
	library *config.EffectLibrary
	audio   *game.AudioManager
	rng     *rand.Rand

	effectNames []string
	current     int

	comet      types.Vec2
	cometAngle float64
	trail      *particle.Trail

	world *demoWorld

	statusMessage string
	quit          bool
}

// NewDemoScene 创建演示场景
//
// 参数：
//   - lib: 效果预设库
//   - audio: 音频管理器（可为 nil）
//   - seed: 随机种子，固定种子便于复现
func NewDemoScene(lib *config.EffectLibrary, audio *game.AudioManager, seed uint64) *DemoScene {
	return &DemoScene{
		library:     lib,
		audio:       audio,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		effectNames: lib.Names(),
		world:       newDemoWorld(DemoWorldWidth, demoGroundY),
	}
}

// Enter 实现 Scene
func (s *DemoScene) Enter(h *game.Host) {
	s.host = h
	h.Camera.Bounds = types.V(DemoWorldWidth, DemoWorldHeight)
	h.Lights.Ambient = types.Color{R: 0.45, G: 0.45, B: 0.55, A: 1}
	s.comet = types.V(DemoWorldWidth/2, 300)
	h.Camera.CenterOn(s.comet)
	s.spawnTrail()
	s.statusMessage = "Click: effect  Right click: flash  T: twist  Tab: next effect"
	log.Printf("[DemoScene] Entered, %d effects available", len(s.effectNames))
}

// Exit 实现 Scene
func (s *DemoScene) Exit() {
	s.trail = nil
}

// QuitRequested 实现 Quitter
func (s *DemoScene) QuitRequested() bool { return s.quit }

// Update 实现 Scene
func (s *DemoScene) Update() {
	s.handleInput()
	s.Tick()
}

// Tick 推进彗星并生成环境余烬，不读取输入
func (s *DemoScene) Tick() {
	t := float64(s.host.Ticks())
	prev := s.comet
	s.comet = types.V(
		DemoWorldWidth/2+math.Sin(t*0.011)*700,
		320+math.Sin(t*0.023)*160,
	)
	if d := s.comet.Sub(prev); d.Len() > 0 {
		s.cometAngle = d.Angle()
	}

	if s.trail == nil || !s.trail.Alive() {
		s.spawnTrail()
	}
	if s.trail != nil {
		s.trail.Follow(s.comet, s.cometAngle, cometTrailTTL)
	}

	if s.host.Ticks()%emberInterval == 0 {
		x := s.rng.Float64() * DemoWorldWidth
		s.SpawnEffect("ember", types.V(x, demoGroundY-4), KindEmber)
	}
}

// Current 当前选中的预设名称
func (s *DemoScene) Current() string {
	if len(s.effectNames) == 0 {
		return ""
	}
	return s.effectNames[s.current]
}

// CycleEffect 切换选中的预设
func (s *DemoScene) CycleEffect(delta int) {
	n := len(s.effectNames)
	if n == 0 {
		return
	}
	s.current = ((s.current+delta)%n + n) % n
	s.statusMessage = fmt.Sprintf("Selected: %s", s.Current())
}

// SpawnEffect 在世界坐标 pos 处生成指定预设
func (s *DemoScene) SpawnEffect(name string, pos types.Vec2, kind int) bool {
	p, err := s.library.New(name)
	if err != nil {
		return false
	}
	return systems.SpawnParticle(s.host.Particles, p, systems.SpawnOptions{Position: pos, Kind: kind})
}

// SpawnCurrent 在屏幕坐标处生成当前预设
func (s *DemoScene) SpawnCurrent(screenPos types.Vec2) bool {
	name := s.Current()
	if name == "" {
		return false
	}
	ok := s.SpawnEffect(name, s.host.Camera.ScreenToWorld(screenPos), KindEffect)
	if ok && s.audio != nil {
		s.audio.PlaySound("spawn")
	}
	return ok
}

// Flash 生成一个全屏闪白遮罩
func (s *DemoScene) Flash() *particle.ScreenMask {
	m := systems.Spawn[particle.ScreenMask](s.host.Particles, systems.SpawnOptions{Kind: KindMask, Alpha: 0.6})
	if img, err := s.host.Resources.Resolve(game.BuiltinPrefix + "square"); err == nil {
		m.SetTexture(img, particle.MaskStretch, nil)
	}
	m.Blend = render.Additive
	m.FadeOut = true
	m.TimeLeft, m.MaxTimeLeft = 24, 24
	s.host.Particles.ChangeStage(m, stage.BeforeInterface)
	if s.audio != nil {
		s.audio.PlaySound("flash")
	}
	return m
}

// Twist 在世界坐标 pos 处生成扭曲圆环，并配一个冲击波效果
func (s *DemoScene) Twist(pos types.Vec2) *particle.TwistCircle {
	tc := systems.Spawn[particle.TwistCircle](s.host.Particles, systems.SpawnOptions{Position: pos, Kind: KindTwist})
	tc.Duration = 45
	tc.Strength = 0.15
	s.SpawnEffect("shockwave", pos, KindEffect)
	return tc
}

func (s *DemoScene) spawnTrail() {
	t := &particle.Trail{}
	if !systems.SpawnParticle(s.host.Particles, t, systems.SpawnOptions{Position: s.comet, Kind: KindTrail}) {
		s.trail = nil
		return
	}
	img, err := s.host.Resources.Resolve(game.BuiltinPrefix + "spark")
	if err != nil {
		log.Printf("[DemoScene] Warning: trail sprite unavailable: %v", err)
	}
	t.SetUp(40, img, nil, render.Additive, 0.9, 0.7)
	t.Color = types.Color{R: 1, G: 0.9, B: 0.6, A: 1}
	end := types.Color{R: 0.3, G: 0.4, B: 1, A: 1}
	t.EndColor = &end
	t.Taper = 0.2
	t.Style = particle.TrailWave
	// 彗星头部照亮周围
	t.Light = 0.7
	t.LightColor = types.Color{R: 1, G: 0.85, B: 0.5, A: 1}
	t.Follow(s.comet, s.cometAngle, cometTrailTTL)
	s.trail = t
}

// DrawStage 实现 Scene：世界各层穿插在粒子阶段之间
func (s *DemoScene) DrawStage(screen *ebiten.Image, st stage.Stage) {
	cam := s.host.Camera.ScreenPosition()
	switch st {
	case stage.BeforeBackground:
		s.world.drawSky(screen)
	case stage.BeforeWalls:
		s.world.drawHills(screen, cam)
	case stage.BeforeSolidTiles:
		s.world.drawGround(screen, cam, s.lightAt)
	case stage.BeforeEntities:
		s.world.drawCrates(screen, cam, s.lightAt)
	case stage.BeforeInterface:
		s.drawTwists(screen, cam)
	}
}

// lightAt 世界坐标处的光照
func (s *DemoScene) lightAt(p types.Vec2) types.Color {
	x, y := s.host.Particles.Env().LightCell(p)
	return s.host.Lights.ColorAt(x, y)
}

// drawTwists 以描边圆环可视化扭曲阶段的粒子
func (s *DemoScene) drawTwists(screen *ebiten.Image, cam types.Vec2) {
	for _, p := range s.host.Particles.InStage(stage.Twist) {
		tc, ok := p.(*particle.TwistCircle)
		if !ok || !tc.Alive() {
			continue
		}
		drawTwistRing(screen, tc.Position.Sub(cam), tc.ImageScale*120, tc.ImageAlpha)
	}
}

// DrawOverlay 实现 Scene
func (s *DemoScene) DrawOverlay(screen *ebiten.Image) {
	pm := s.host.Particles
	lines := []string{
		fmt.Sprintf("Effect: %s  Particles: %d/%d  Faults: %d", s.Current(), pm.Count(), pm.Capacity(), pm.Faults()),
		fmt.Sprintf("Lit cells: %d  Camera: (%.0f, %.0f)", s.host.Lights.LitCells(), s.host.Camera.Position.X, s.host.Camera.Position.Y),
		s.statusMessage,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*20)
	}
}
