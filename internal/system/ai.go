// internal/system/ai.go
package system

import (
	"context"
	"log/slog"

	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

// AISystem решает, что делает враг в свой ход.
type AISystem struct {
	world *World
}

func NewAISystem(w *World) *AISystem {
	return &AISystem{world: w}
}

// Roster — враги комнаты в порядке списка комнаты.
func (s *AISystem) Roster() []types.EntityID {
	var out []types.EntityID
	for _, id := range s.world.Room.List() {
		if s.world.ECS.Has(id, component.KindEnemy) {
			out = append(out, id)
		}
	}
	return out
}

// Act выполняет ход врага id. Враги без известного поведения пропускаются.
func (s *AISystem) Act(_ context.Context, id types.EntityID) {
	enemy, ok := s.world.ECS.Enemies[id]
	if !ok || !s.world.Room.Contains(id) {
		return // погиб раньше своей очереди
	}
	enemy.Turns++
	if sm, ok := s.world.ECS.Summoners[id]; ok {
		enemy.State = s.summoner(id, sm)
		return
	}
	enemy.State = component.AIWaiting
}

// Exposed — сколько соседних клеток игрока свободно.
func (s *AISystem) Exposed(player types.EntityID) int {
	cell, ok := s.world.ECS.Cells[player]
	if !ok || !cell.Placed {
		return 0
	}
	return len(s.world.Room.EmptyNeighbors(cell.Hex))
}

func (s *AISystem) summoner(id types.EntityID, sm *component.Summoner) component.AIState {
	cfg := s.world.Config
	sm.Mana = min(sm.Mana+1, sm.MaxMana)

	player, hasPlayer := s.world.PlayerID()
	if hasPlayer && s.Exposed(player) >= cfg.Summoner.ExposedThreshold && sm.Mana >= cfg.Summoner.BoxInCost {
		a, err := s.world.Motion.Cast(id, event.SpellBoxIn, cfg.Timing.CastMS)
		if s.world.play(id, a, err, "cast") {
			sm.Mana -= cfg.Summoner.BoxInCost
			return component.AIBoxingIn
		}
	}
	if len(sm.Children) < sm.Limit && sm.Mana >= cfg.Summoner.SummonCost {
		a, err := s.world.Motion.Cast(id, event.SpellSummon, cfg.Timing.CastMS)
		if s.world.play(id, a, err, "cast") {
			sm.Mana -= cfg.Summoner.SummonCost
			return component.AISummoning
		}
	}
	return s.wander(id)
}

// wander делает шаг в случайную сторону или толкается, если там занято.
func (s *AISystem) wander(id types.EntityID) component.AIState {
	cell := s.world.ECS.Cells[id]
	dir := hexmap.Directions[s.world.RNG.Intn(len(hexmap.Directions))]
	dest := cell.Hex.Neighbor(dir)
	timing := s.world.Config.Timing
	if s.world.Room.IsEmpty(dest) {
		a, err := s.world.Motion.Move(id, dest, timing.MoveMS)
		if s.world.play(id, a, err, "move") {
			return component.AIMoving
		}
		return component.AIWaiting
	}
	a, err := s.world.Motion.Bump(id, dest, timing.BumpMS)
	if !s.world.play(id, a, err, "bump") {
		slog.Debug("enemy stays", "entity", id)
		return component.AIWaiting
	}
	return component.AIBumping
}
