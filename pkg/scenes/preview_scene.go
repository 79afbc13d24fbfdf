package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/game"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/systems"
	"github.com/decker502/stagefx/pkg/types"
)

// autoPlayInterval 自动播放模式下切换预设的间隔（模拟步）
const autoPlayInterval = 180

var previewBackground = color.RGBA{25, 25, 38, 255}

// PreviewOptions 预览场景的启动参数
type PreviewOptions struct {
	// Filter 初始名称过滤
	Filter string
	// Effect 初始选中的预设，为空时使用上次保存的选择
	Effect   string
	AutoPlay bool
}

// PreviewScene 效果预设浏览器
//
// 列出 EffectLibrary 中的全部预设，支持过滤搜索、键盘切换和点击生成。
type PreviewScene struct {
	host     *game.Host
	library  *config.EffectLibrary
	settings *game.SettingsManager
	audio    *game.AudioManager

	allEffectNames      []string
	filteredEffectNames []string
	currentIndex        int

	searchMode  bool
	searchQuery string

	autoPlay      bool
	lastSpawnTick uint64

	// paused 暂停自动切换，专注观看完整动画
	paused bool

	statusMessage string
	spawned       int
	rejected      int
	quit          bool
}

// NewPreviewScene 创建预览场景
//
// 参数：
//   - lib: 效果预设库
//   - opts: 启动参数
//   - settings: 设置管理器（可为 nil）
//   - audio: 音频管理器（可为 nil）
func NewPreviewScene(lib *config.EffectLibrary, opts PreviewOptions, settings *game.SettingsManager, audio *game.AudioManager) *PreviewScene {
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}
	allNames := lib.Names()

	initialQuery := opts.Filter
	filteredNames := FilterEffects(allNames, initialQuery)
	if len(filteredNames) == 0 {
		log.Printf("[PreviewScene] Warning: No effects match initial filter %q, showing all", initialQuery)
		filteredNames = allNames
		initialQuery = ""
	}

	start := opts.Effect
	if start == "" {
		start = settings.Settings().LastEffect
	}
	startIndex := 0
	for i, name := range filteredNames {
		if name == start {
			startIndex = i
			break
		}
	}

	s := &PreviewScene{
		library:             lib,
		settings:            settings,
		audio:               audio,
		allEffectNames:      allNames,
		filteredEffectNames: filteredNames,
		currentIndex:        startIndex,
		searchQuery:         initialQuery,
		autoPlay:            opts.AutoPlay,
	}
	s.updateStatusMessage()
	log.Printf("[PreviewScene] %d total effects, %d after filter", len(allNames), len(filteredNames))
	return s
}

// FilterEffects 返回名称包含 query 的预设（不区分大小写）
func FilterEffects(allNames []string, query string) []string {
	if query == "" {
		return allNames
	}

	queryLower := strings.ToLower(query)
	filtered := make([]string, 0)
	for _, name := range allNames {
		if strings.Contains(strings.ToLower(name), queryLower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Enter 实现 Scene：应用环境光设置并在画面中心生成当前预设
func (s *PreviewScene) Enter(h *game.Host) {
	s.host = h
	s.applyAmbient()
	s.lastSpawnTick = h.Ticks()
	s.SpawnCurrent(s.center())
}

// Exit 实现 Scene：记住当前选择
func (s *PreviewScene) Exit() {
	if name := s.Current(); name != "" {
		s.settings.SetLastEffect(name)
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[PreviewScene] Warning: Failed to save settings: %v", err)
	}
}

// QuitRequested 实现 Quitter
func (s *PreviewScene) QuitRequested() bool { return s.quit }

// Update 实现 Scene
func (s *PreviewScene) Update() {
	if s.searchMode {
		s.updateSearchMode()
		return
	}
	s.updateNormalMode()
	s.tickAutoPlay()
}

// tickAutoPlay 自动播放：每隔 autoPlayInterval 步生成当前预设并切换到下一个
func (s *PreviewScene) tickAutoPlay() {
	if s.paused || !(s.autoPlay || s.settings.Settings().AutoSpawn) {
		return
	}
	if s.host.Ticks()-s.lastSpawnTick < autoPlayInterval {
		return
	}
	s.NextEffect()
	s.lastSpawnTick = s.host.Ticks()
}

// Current 当前选中的预设名称
func (s *PreviewScene) Current() string {
	if len(s.filteredEffectNames) == 0 {
		return ""
	}
	return s.filteredEffectNames[s.currentIndex]
}

// Filtered 当前过滤后的预设列表
func (s *PreviewScene) Filtered() []string { return s.filteredEffectNames }

// Status 状态栏文字
func (s *PreviewScene) Status() string { return s.statusMessage }

// SpawnCurrent 在屏幕坐标 pos 处生成当前预设
func (s *PreviewScene) SpawnCurrent(pos types.Vec2) bool {
	name := s.Current()
	if name == "" {
		s.statusMessage = "No effects to spawn"
		return false
	}

	p, err := s.library.New(name)
	if err != nil {
		log.Printf("[PreviewScene] Failed to create effect %s: %v", name, err)
		s.statusMessage = fmt.Sprintf("Error: %v", err)
		return false
	}

	scale := s.settings.Settings().SpawnScale
	world := s.host.Camera.ScreenToWorld(pos)
	if !systems.SpawnParticle(s.host.Particles, p, systems.SpawnOptions{Position: world, Scale: scale}) {
		s.rejected++
		s.statusMessage = fmt.Sprintf("Capacity reached (%d)", s.host.Particles.Capacity())
		return false
	}

	s.spawned++
	if s.audio != nil {
		s.audio.PlaySound("spawn")
	}
	log.Printf("[PreviewScene] Spawned effect: %s at (%.0f, %.0f) scale %.2f", name, world.X, world.Y, scale)
	s.statusMessage = fmt.Sprintf("Spawned: %s (scale %.2f)", name, scale)
	return true
}

// NextEffect 切换到下一个预设并生成
func (s *PreviewScene) NextEffect() { s.JumpEffects(1) }

// PreviousEffect 切换到上一个预设并生成
func (s *PreviewScene) PreviousEffect() { s.JumpEffects(-1) }

// JumpEffects 前后跳转 delta 个预设并生成
func (s *PreviewScene) JumpEffects(delta int) {
	n := len(s.filteredEffectNames)
	if n == 0 {
		return
	}
	s.currentIndex = ((s.currentIndex+delta)%n + n) % n
	s.updateStatusMessage()
	s.SpawnCurrent(s.center())
}

// SelectIndex 选中指定下标的预设并生成，越界时忽略
func (s *PreviewScene) SelectIndex(i int) bool {
	if i < 0 || i >= len(s.filteredEffectNames) {
		return false
	}
	s.currentIndex = i
	s.updateStatusMessage()
	s.SpawnCurrent(s.center())
	return true
}

// ApplySearch 按搜索词重新过滤并回到第一项
func (s *PreviewScene) ApplySearch(query string) {
	s.searchQuery = query
	s.filteredEffectNames = FilterEffects(s.allEffectNames, query)
	s.currentIndex = 0
	log.Printf("[PreviewScene] Search query: %q, Results: %d", query, len(s.filteredEffectNames))
}

// ClearParticles 清除全部粒子
func (s *PreviewScene) ClearParticles() {
	n := s.host.Particles.Count()
	s.host.Particles.ClearAll()
	if s.audio != nil {
		s.audio.PlaySound("clear")
	}
	s.statusMessage = "Cleared all particles"
	log.Printf("[PreviewScene] Cleared %d particles", n)
}

// AdjustSpawnScale 调整生成缩放
func (s *PreviewScene) AdjustSpawnScale(factor float64) {
	s.settings.SetSpawnScale(s.settings.Settings().SpawnScale * factor)
	s.statusMessage = fmt.Sprintf("Spawn scale: %.2f", s.settings.Settings().SpawnScale)
}

// AdjustAmbient 调整环境光
func (s *PreviewScene) AdjustAmbient(delta float64) {
	s.settings.SetAmbient(s.settings.Settings().Ambient + delta)
	s.applyAmbient()
	s.statusMessage = fmt.Sprintf("Ambient: %.2f", s.settings.Settings().Ambient)
}

func (s *PreviewScene) applyAmbient() {
	if s.host == nil {
		return
	}
	a := s.settings.Settings().Ambient
	s.host.Lights.Ambient = types.Color{R: a, G: a, B: a, A: 1}
}

func (s *PreviewScene) center() types.Vec2 {
	if s.host == nil {
		return types.V(WindowWidth/2, WindowHeight/2)
	}
	return types.V(float64(s.host.Width)/2, float64(s.host.Height)/2)
}

// updateStatusMessage updates the status message when switching effects
func (s *PreviewScene) updateStatusMessage() {
	name := s.Current()
	if name == "" {
		s.statusMessage = "No effects available"
		return
	}
	s.statusMessage = fmt.Sprintf("Selected: %s", name)
	log.Printf("[PreviewScene] Current effect: %s (%d/%d)", name, s.currentIndex+1, len(s.filteredEffectNames))
}

// DrawStage 实现 Scene：背景与中心十字线
func (s *PreviewScene) DrawStage(screen *ebiten.Image, st stage.Stage) {
	switch st {
	case stage.BeforeBackground:
		screen.Fill(previewBackground)
	case stage.BeforeSolidTiles:
		c := s.center()
		guide := color.RGBA{60, 60, 80, 255}
		vector.StrokeLine(screen, float32(c.X-20), float32(c.Y), float32(c.X+20), float32(c.Y), 1, guide, false)
		vector.StrokeLine(screen, float32(c.X), float32(c.Y-20), float32(c.X), float32(c.Y+20), 1, guide, false)
	}
}

// DrawOverlay 实现 Scene：预设信息、统计与操作说明
func (s *PreviewScene) DrawOverlay(screen *ebiten.Image) {
	if len(s.filteredEffectNames) == 0 {
		ebitenutil.DebugPrintAt(screen, "No effects match current filter", 10, 10)
		return
	}

	title := fmt.Sprintf("Effect Preview - %d/%d", s.currentIndex+1, len(s.filteredEffectNames))
	ebitenutil.DebugPrintAt(screen, title, 10, 10)

	if s.searchQuery != "" {
		searchStatus := fmt.Sprintf("Filter: \"%s\" (%d/%d effects)", s.searchQuery, len(s.filteredEffectNames), len(s.allEffectNames))
		ebitenutil.DebugPrintAt(screen, searchStatus, 10, 30)
	}

	preset, _ := s.library.Get(s.Current())
	if preset != nil {
		info := fmt.Sprintf("Effect: %s (%d layers, %d ticks, stage %s)", preset.Name, len(preset.Layers), preset.Lifetime, preset.Stage)
		ebitenutil.DebugPrintAt(screen, info, 10, 50)
	}

	if s.settings.Settings().ShowStats {
		s.drawStats(screen)
	}

	if s.searchMode {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SEARCH: %s_", s.searchQuery), 10, 130)
		ebitenutil.DebugPrintAt(screen, "(Type to filter, Backspace to delete, Enter/Esc to exit)", 10, 150)
	} else if s.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, s.statusMessage, 10, 130)
	}

	controls := []string{
		"Navigation: <-/-> = Next/Prev  PgUp/PgDn = Jump 10  Home/End = First/Last  1-9 = Quick Jump",
		"Actions:    Click/Space = Spawn  R = Clear  P = Pause  F or / = Search  Q = Quit",
		"Settings:   +/- = Spawn scale  [/] = Ambient  S = Stats  A = Auto spawn  M = Sound",
	}
	y := s.host.Height - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}

	if s.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (Press P to resume)", s.host.Width-220, 10)
	} else if s.autoPlay || s.settings.Settings().AutoSpawn {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY MODE", s.host.Width-160, 10)
	}
}

func (s *PreviewScene) drawStats(screen *ebiten.Image) {
	pm := s.host.Particles
	cs := s.host.Canvas.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Particles: %d/%d  Faults: %d  Rejected: %d", pm.Count(), pm.Capacity(), pm.Faults(), s.rejected), 10, 70)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Draw calls: %d  Quads: %d  Blend switches: %d  TPS: %.0f", cs.DrawCalls, cs.Quads, cs.Switches, ebiten.ActualTPS()), 10, 90)
	ebitenutil.DebugPrintAt(screen, "Stages: "+stage.Summary(pm.StageCounts()), 10, 110)
}
