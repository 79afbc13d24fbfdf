package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/stagefx/pkg/types"
)

const cameraPanSpeed = 8

func (s *DemoScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.quit = true
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			s.CycleEffect(-1)
		} else {
			s.CycleEffect(1)
		}
	}

	// 摄像机平移（按住）
	var pan types.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		pan.X -= cameraPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		pan.X += cameraPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pan.Y -= cameraPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pan.Y += cameraPanSpeed
	}
	if pan != (types.Vec2{}) {
		s.host.Camera.Pan(pan)
	}

	x, y := ebiten.CursorPosition()
	cursor := types.V(float64(x), float64(y))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.SpawnCurrent(cursor)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.Flash()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		s.Twist(s.host.Camera.ScreenToWorld(cursor))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.host.Particles.ClearAll()
		s.trail = nil
		s.statusMessage = "Cleared all particles"
	}
}
