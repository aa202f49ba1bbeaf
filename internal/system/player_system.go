// internal/system/player_system.go
package system

import (
	"context"
	"log/slog"

	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

// PlayerSystem ведёт игрока: к клетке, на которую кликнули, иначе случайно.
type PlayerSystem struct {
	world     *World
	target    hexmap.Hex
	hasTarget bool
}

func NewPlayerSystem(w *World) *PlayerSystem {
	return &PlayerSystem{world: w}
}

// SetTarget запоминает клетку для следующего хода игрока.
func (s *PlayerSystem) SetTarget(h hexmap.Hex) {
	s.target = h
	s.hasTarget = true
}

// Act выполняет ход. false — игрока нет, ход не сделан.
func (s *PlayerSystem) Act(_ context.Context) bool {
	id, ok := s.world.PlayerID()
	if !ok {
		return false
	}
	from := s.world.ECS.Cells[id].Hex

	if s.hasTarget {
		s.hasTarget = false
		if !s.walk(id, from, s.target) {
			a, err := s.world.Motion.Shake(id, s.world.Config.Timing.ShakeMS)
			s.world.play(id, a, err, "shake")
		}
		return true
	}

	if s.world.RNG.Chance(s.world.Config.Player.PathChance) {
		empty := s.world.Room.EmptyCells()
		if len(empty) > 0 && s.walk(id, from, empty[s.world.RNG.Intn(len(empty))]) {
			return true
		}
	}
	s.step(id, from)
	return true
}

// walk ищет путь и запускает анимацию прохода. false — пути нет или он нулевой.
func (s *PlayerSystem) walk(id types.EntityID, from, to hexmap.Hex) bool {
	path, err := hexmap.FindPath(s.world.Room.Layout, s.world.Room.IsEmpty, from, to, s.world.RNG)
	if err != nil {
		slog.Debug("no path", "from", from, "to", to, "error", err)
		return false
	}
	if len(path) < 2 {
		return false
	}
	a, err := s.world.Motion.Path(id, path, s.world.Config.Timing.PathStepMS)
	return s.world.play(id, a, err, "path")
}

func (s *PlayerSystem) step(id types.EntityID, from hexmap.Hex) {
	dest := from.Neighbor(hexmap.Directions[s.world.RNG.Intn(len(hexmap.Directions))])
	timing := s.world.Config.Timing
	if s.world.Room.IsEmpty(dest) {
		a, err := s.world.Motion.Move(id, dest, timing.MoveMS)
		s.world.play(id, a, err, "move")
		return
	}
	a, err := s.world.Motion.Bump(id, dest, timing.BumpMS)
	s.world.play(id, a, err, "bump")
}
