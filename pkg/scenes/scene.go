package scenes

import (
	"github.com/decker502/stagefx/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 窗口逻辑尺寸
const (
	WindowWidth  = 1024
	WindowHeight = 768
)

// 场景名称（SceneManager.Load 使用）
const (
	SceneDemo    = "demo"
	ScenePreview = "preview"
)

// Quitter 场景请求退出程序时返回 true
type Quitter interface {
	QuitRequested() bool
}
