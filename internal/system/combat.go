// internal/system/combat.go
package system

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/motion"
	"go-hex-summoner/internal/types"
)

// CombatSystem разрешает столкновения и смерти.
type CombatSystem struct {
	world *World
}

func NewCombatSystem(w *World) *CombatSystem {
	s := &CombatSystem{world: w}
	w.Bus.Subscribe(event.BumpResolve, s)
	return s
}

func (s *CombatSystem) OnEvent(e event.Event) {
	data, ok := e.Data.(event.BumpData)
	if !ok {
		return
	}
	ecs := s.world.ECS
	target := s.world.Room.Occupant(data.Target)
	// Убивает только игрок, и только врагов.
	if target != types.None && ecs.Has(data.Actor, component.KindPlayer) && ecs.Has(target, component.KindEnemy) {
		s.world.sound(motion.CueThud)
		s.Kill(target, data.Actor)
		return
	}
	s.world.sound(motion.CueBump)
}

// Kill убирает сущность из комнаты и запускает её исчезновение. Смерть
// призывателя забирает всех его живых призванных; обход с множеством
// посещённых не даёт убить кого-то дважды. Возвращает число убитых.
func (s *CombatSystem) Kill(id, killer types.EntityID) int {
	ecs := s.world.ECS
	visited := mapset.New[types.EntityID]()
	stack := []types.EntityID{id}
	killed := 0

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(cur) {
			continue
		}
		visited.Put(cur)
		if !s.world.Room.Contains(cur) {
			continue
		}

		if err := s.world.Room.Remove(cur); err != nil {
			slog.Warn("kill: remove from room", "entity", cur, "error", err)
			continue
		}
		if child, ok := ecs.Summons[cur]; ok {
			if parent, ok := ecs.Summoners[child.Summoner]; ok {
				parent.RemoveChild(cur)
			}
		}
		if sm, ok := ecs.Summoners[cur]; ok {
			stack = append(stack, sm.Children...)
		}

		by := killer
		if cur != id {
			by = types.None
		}
		s.world.Bus.Dispatch(event.Event{Type: event.EntityKilled, Data: event.KilledData{Entity: cur, Killer: by}})
		if p, ok := ecs.Players[by]; ok {
			p.Kills++
		}
		killed++

		a, err := s.world.Motion.FadeOut(cur, s.world.Config.Timing.FadeOutMS)
		s.world.play(cur, a, err, "fade-out")
	}
	if killed > 1 {
		slog.Debug("kill cascade", "root", id, "killed", killed)
	}
	return killed
}
