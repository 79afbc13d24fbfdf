package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stagefx/pkg/stage"
)

// Scene 宿主场景：拥有世界内容，并在各绘制阶段之间绘制自己
type Scene interface {
	// Enter 场景成为活动场景时调用
	Enter(h *Host)

	// Update 每个模拟步调用一次，先于粒子模拟
	Update()

	// DrawStage 在阶段 s 的粒子之前绘制世界内容
	DrawStage(screen *ebiten.Image, s stage.Stage)

	// DrawOverlay 全部阶段绘制完成后调用（调试信息、提示文字）
	DrawOverlay(screen *ebiten.Image)

	// Exit 场景被替换时调用
	Exit()
}
