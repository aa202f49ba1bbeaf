// internal/system/movement.go
package system

import (
	"log/slog"

	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
)

// MovementSystem переносит занятость клеток по событиям ключевых кадров.
type MovementSystem struct {
	world *World
}

func NewMovementSystem(w *World) *MovementSystem {
	s := &MovementSystem{world: w}
	w.Bus.Subscribe(event.MoveStep, s)
	w.Bus.Subscribe(event.SnapToCell, s)
	return s
}

func (s *MovementSystem) OnEvent(e event.Event) {
	switch data := e.Data.(type) {
	case event.MoveStepData:
		if err := s.world.Room.Move(data.Entity, data.Dest); err != nil {
			slog.Warn("move step failed", "entity", data.Entity, "row", data.Dest.Row, "col", data.Dest.Col, "error", err)
			s.snap(data.Entity)
			return
		}
		if p, ok := s.world.ECS.Players[data.Entity]; ok {
			p.Steps++
		}
	case event.EntityRef:
		if e.Type == event.SnapToCell {
			s.snap(data.Entity)
		}
	}
}

// snap возвращает позицию в центр текущей клетки.
func (s *MovementSystem) snap(id types.EntityID) {
	cell, ok := s.world.ECS.Cells[id]
	pos, hasPos := s.world.ECS.Positions[id]
	if !ok || !hasPos || !cell.Placed {
		return
	}
	pos.X, pos.Y = cell.Hex.ToPixel()
}
