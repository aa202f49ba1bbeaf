// internal/state/pause_state.go
package state

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-hex-summoner/internal/config"
	"go-hex-summoner/pkg/render"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает игру: часы игры не опрашиваются, поэтому после
// возврата первый кадр получит не больше MaxDeltaTime.
type PauseState struct {
	sm       *StateMachine
	previous *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{sm: sm, previous: prev}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(context.Context) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sm.SetState(s.previous)
	}
	return nil
}

// Draw рисует замороженный кадр в приглушённых цветах.
func (s *PauseState) Draw(screen *ebiten.Image) {
	scene := dim(s.previous.scene(screen))
	scene.Pointer = nil
	s.previous.renderer.Target = screen
	s.previous.renderer.Render(scene)

	w, h := float32(config.ScreenWidth), float32(config.ScreenHeight)
	vector.DrawFilledRect(screen, 0, h/2-30, w, 50, color.RGBA{0, 0, 0, 160}, false)
	const label = "PAUSED"
	b := text.BoundString(s.previous.renderer.HUDFace(), label)
	text.Draw(screen, label, s.previous.renderer.HUDFace(), int(w)/2-b.Dx()/2, int(h)/2, config.TextLightColor)
}

func dim(scene *render.Scene) *render.Scene {
	for i := range scene.Hexes {
		scene.Hexes[i].Fill = render.DarkenColor(scene.Hexes[i].Fill)
	}
	for i := range scene.Overlay {
		scene.Overlay[i].Color = render.DarkenColor(scene.Overlay[i].Color)
	}
	for i := range scene.Entities {
		scene.Entities[i].Color = render.DarkenColor(scene.Entities[i].Color)
	}
	return scene
}

func (s *PauseState) Exit() {}
