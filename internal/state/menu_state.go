// internal/state/menu_state.go
package state

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"go-hex-summoner/internal/config"
)

// MenuState — заставка перед игрой. Пробел или клик запускают комнату.
type MenuState struct {
	sm    *StateMachine
	next  *GameState
	title font.Face
	hint  font.Face
}

func NewMenuState(sm *StateMachine, next *GameState, title, hint font.Face) *MenuState {
	return &MenuState{sm: sm, next: next, title: title, hint: hint}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(context.Context) error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.sm.SetState(m.next)
	}
	return nil
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	center := func(face font.Face, s string, y int) {
		b := text.BoundString(face, s)
		text.Draw(screen, s, face, config.ScreenWidth/2-b.Dx()/2, y, config.TextLightColor)
	}
	center(m.title, "HEX SUMMONER", config.ScreenHeight/2-20)
	center(m.hint, "click a cell to walk, space to step, P to pause", config.ScreenHeight/2+30)
}

func (m *MenuState) Exit() {}
