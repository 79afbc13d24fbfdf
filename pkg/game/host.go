package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stagefx/pkg/config"
	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/systems"
	"github.com/decker502/stagefx/pkg/types"
)

// Host 粒子引擎的 ebiten 宿主，实现 ebiten.Game
//
// 每个模拟步：清除点光源 → 场景更新 → 阶段注册表的更新回调（粒子模拟）。
// 每帧：按阶段顺序交替绘制场景的世界内容与该阶段的粒子，最后绘制叠加层。
type Host struct {
	Width, Height int

	Hooks     *stage.Hooks
	Particles *systems.ParticleManager
	Canvas    *EbitenCanvas
	Camera    *Camera
	Lights    *LightGrid
	Resources *ResourceManager
	Scenes    *SceneManager

	ticks uint64
}

// NewHost 创建宿主并把粒子管理器注册到阶段注册表
func NewHost(cfg *config.ManagerConfig, width, height int) (*Host, error) {
	h := &Host{
		Width:     width,
		Height:    height,
		Hooks:     stage.NewHooks(),
		Canvas:    NewEbitenCanvas(),
		Camera:    NewCamera(float64(width), float64(height)),
		Lights:    NewLightGrid(types.White),
		Resources: NewResourceManager(),
	}
	h.Scenes = NewSceneManager(h)

	env := particle.DefaultEnv()
	env.Camera = h.Camera
	env.Lighting = h.Lights
	env.Images = h.Resources

	h.Particles = systems.NewParticleManager(cfg, env)
	h.Particles.SetCanvas(h.Canvas)
	if err := h.Particles.Attach(h.Hooks); err != nil {
		return nil, fmt.Errorf("failed to create host: %w", err)
	}
	return h, nil
}

// SwitchScene 切换场景并清空全部粒子
func (h *Host) SwitchScene(s Scene) {
	h.Particles.ClearAll()
	h.Scenes.SwitchTo(s)
}

// Ticks 已执行的模拟步数
func (h *Host) Ticks() uint64 { return h.ticks }

// Update 实现 ebiten.Game
func (h *Host) Update() error {
	h.Step()
	return nil
}

// Step 执行一个模拟步，可在无窗口环境中直接调用
func (h *Host) Step() {
	h.Lights.Reset()
	h.Scenes.Update()
	h.Hooks.Update()
	h.ticks++
}

// Draw 实现 ebiten.Game
func (h *Host) Draw(screen *ebiten.Image) {
	h.Canvas.SetTarget(screen)
	h.Hooks.DrawAllWith(func(s stage.Stage) {
		// 上一阶段的粒子批次必须先于本阶段的世界内容提交
		h.Canvas.Flush()
		h.Scenes.DrawStage(screen, s)
	})
	h.Canvas.Flush()
	h.Scenes.DrawOverlay(screen)
}

// Layout 实现 ebiten.Game
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.Width, h.Height
}
