package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/stagefx/pkg/types"
)

// updateSearchMode handles input when in search mode
func (s *PreviewScene) updateSearchMode() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.searchMode = false
		s.statusMessage = fmt.Sprintf("Search: %q (%d results)", s.searchQuery, len(s.filteredEffectNames))
		log.Printf("[PreviewScene] Exited search mode. Query: %q, Results: %d", s.searchQuery, len(s.filteredEffectNames))
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if len(s.searchQuery) > 0 {
			s.ApplySearch(s.searchQuery[:len(s.searchQuery)-1])
		}
		return
	}

	runes := ebiten.AppendInputChars(nil)
	if len(runes) == 0 {
		return
	}
	query := s.searchQuery
	for _, r := range runes {
		// 只接受字母数字和少量符号
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			query += string(r)
		}
	}
	s.ApplySearch(query)
}

// updateNormalMode handles input when in normal mode
func (s *PreviewScene) updateNormalMode() {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.quit = true
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		s.searchMode = true
		s.statusMessage = "Search mode: Type to filter effects..."
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.paused = !s.paused
		if s.paused {
			s.statusMessage = "PAUSED - Press P to resume, Space to spawn more"
		} else {
			s.statusMessage = "Resumed"
		}
		return
	}

	// 暂停时不允许切换
	if !s.paused {
		for i := 0; i <= 9; i++ {
			if inpututil.IsKeyJustPressed(ebiten.Key(int(ebiten.Key0) + i)) {
				target := i
				if i == 0 {
					target = 10 // 0 跳到第 10 个
				}
				s.SelectIndex(target - 1)
				return
			}
		}

		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
			s.PreviousEffect()
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
			s.NextEffect()
		case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
			s.JumpEffects(-10)
		case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
			s.JumpEffects(10)
		case inpututil.IsKeyJustPressed(ebiten.KeyHome):
			s.SelectIndex(0)
		case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
			s.SelectIndex(len(s.filteredEffectNames) - 1)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.ClearParticles()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		s.AdjustSpawnScale(1.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		s.AdjustSpawnScale(0.8)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		s.AdjustAmbient(-0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		s.AdjustAmbient(0.1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.settings.ToggleStats()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		s.settings.ToggleAutoSpawn()
		s.lastSpawnTick = s.host.Ticks()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		st := s.settings.Settings()
		st.SoundEnabled = !st.SoundEnabled
		s.statusMessage = fmt.Sprintf("Sound: %v", st.SoundEnabled)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.SpawnCurrent(s.center())
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.SpawnCurrent(types.V(float64(x), float64(y)))
	}
}
