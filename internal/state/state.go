// internal/state/state.go
package state

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
)

// State — интерфейс для всех состояний окна
type State interface {
	Enter()
	Update(ctx context.Context) error
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine — структура для управления состояниями
type StateMachine struct {
	current State
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Current returns the active state or nil.
func (sm *StateMachine) Current() State { return sm.current }

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(ctx context.Context) error {
	if sm.current == nil {
		return nil
	}
	return sm.current.Update(ctx)
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
