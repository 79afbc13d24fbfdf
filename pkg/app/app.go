// Package app 提供粒子宿主应用的核心包装器
//
// 该包把宿主、配置、设置和场景的装配逻辑从 main 包提取出来，
// 演示程序（main.go）和预设浏览器（cmd/particles）共用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/embedded"
	"github.com/decker502/stagefx/pkg/game"
	"github.com/decker502/stagefx/pkg/scenes"
	"github.com/decker502/stagefx/pkg/systems"
)

// 默认数据文件路径
const (
	DefaultManagerConfigPath = "data/manager.yaml"
	DefaultEffectsPath       = "data/effects.yaml"
	// DefaultAppName gdata 存储目录名
	DefaultAppName = "stagefx"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ManagerConfigPath 粒子管理器配置，为空使用 DefaultManagerConfigPath
	ManagerConfigPath string
	// EffectsPath 效果预设库，为空使用 DefaultEffectsPath
	EffectsPath string
	// Scene 启动场景：scenes.SceneDemo 或 scenes.ScenePreview
	Scene string
	// Preview 预览场景的启动参数
	Preview scenes.PreviewOptions
	// Seed 演示场景的随机种子
	Seed uint64
	// AppName gdata 存储目录名，为空使用 DefaultAppName
	AppName string
	// NoAudio 不创建音频上下文
	NoAudio bool
}

// App 是宿主应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	host     *game.Host
	library  *config.EffectLibrary
	settings *game.SettingsManager
	audio    *game.AudioManager
	verbose  bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化宿主应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	managerCfg, err := loadManagerConfig(orDefault(cfg.ManagerConfigPath, DefaultManagerConfigPath))
	if err != nil {
		return nil, err
	}
	library, err := loadEffectLibrary(orDefault(cfg.EffectsPath, DefaultEffectsPath))
	if err != nil {
		return nil, err
	}
	log.Printf("[App] 加载 %d 个效果预设", len(library.Effects))

	host, err := game.NewHost(managerCfg, scenes.WindowWidth, scenes.WindowHeight)
	if err != nil {
		return nil, fmt.Errorf("宿主初始化失败: %w", err)
	}

	// gdata 不可用时降级为内存设置
	var store *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: orDefault(cfg.AppName, DefaultAppName)}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
	} else {
		store = m
	}
	settings := game.NewSettingsManager(store)

	var audioContext *audio.Context
	if !cfg.NoAudio {
		audioContext = audio.NewContext(game.AudioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settings)

	host.Particles.OnFault = func(f systems.Fault) {
		audioManager.PlaySound("fault")
	}

	a := &App{
		host:     host,
		library:  library,
		settings: settings,
		audio:    audioManager,
		verbose:  cfg.Verbose,
	}

	host.Scenes.SetSceneFactory(func(name string) game.Scene {
		switch name {
		case scenes.ScenePreview:
			return scenes.NewPreviewScene(library, cfg.Preview, settings, audioManager)
		case scenes.SceneDemo:
			return scenes.NewDemoScene(library, audioManager, cfg.Seed)
		}
		return nil
	})

	start := orDefault(cfg.Scene, scenes.SceneDemo)
	if !host.Scenes.Load(start) {
		return nil, fmt.Errorf("unknown scene: %s", start)
	}
	log.Printf("[App] Starting scene: %s", start)
	return a, nil
}

func loadManagerConfig(path string) (*config.ManagerConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("管理器配置加载失败: %w", err)
	}
	return config.ParseManagerConfig(data)
}

func loadEffectLibrary(path string) (*config.EffectLibrary, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("效果预设加载失败: %w", err)
	}
	return config.ParseEffectLibrary(data)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Update 更新宿主
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.host.Width, a.host.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if err := a.host.Update(); err != nil {
		return err
	}

	if q, ok := a.host.Scenes.Current().(scenes.Quitter); ok && q.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.host.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.host.Layout(outsideWidth, outsideHeight)
}

// Host 返回宿主
func (a *App) Host() *game.Host { return a.host }

// Library 返回效果预设库
func (a *App) Library() *config.EffectLibrary { return a.library }

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool { return a.verbose }

// Close 退出当前场景并保存设置
func (a *App) Close() error {
	if s := a.host.Scenes.Current(); s != nil {
		s.Exit()
	}
	return a.settings.Save()
}

// Run 打开窗口并运行到退出
func Run(a *App, title string) error {
	ebiten.SetWindowSize(a.host.Width, a.host.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(a)
	if cerr := a.Close(); cerr != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", cerr)
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
