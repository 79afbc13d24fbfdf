package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stagefx/pkg/stage"
)

// SceneFactory 场景工厂函数类型，按名称创建场景
type SceneFactory func(name string) Scene

// SceneManager 管理活动场景，同一时刻只有一个场景接收 Update 和 Draw
type SceneManager struct {
	host         *Host
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，host 在切换场景时传给 Scene.Enter
func NewSceneManager(host *Host) *SceneManager {
	return &SceneManager{host: host}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景：旧场景 Exit，新场景 Enter
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil {
		sm.currentScene.Exit()
	}
	sm.currentScene = scene
	if scene != nil {
		scene.Enter(sm.host)
	}
}

// Current 返回当前活动的场景
func (sm *SceneManager) Current() Scene {
	return sm.currentScene
}

// Load 通过工厂按名称创建并切换场景
func (sm *SceneManager) Load(name string) bool {
	log.Printf("[SceneManager] 加载场景: %s", name)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(name)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", name)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// Update updates the currently active scene.
func (sm *SceneManager) Update() {
	if sm.currentScene != nil {
		sm.currentScene.Update()
	}
}

// DrawStage 绘制活动场景在阶段 s 的世界内容
func (sm *SceneManager) DrawStage(screen *ebiten.Image, s stage.Stage) {
	if sm.currentScene != nil {
		sm.currentScene.DrawStage(screen, s)
	}
}

// DrawOverlay 绘制活动场景的叠加层
func (sm *SceneManager) DrawOverlay(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.DrawOverlay(screen)
	}
}
