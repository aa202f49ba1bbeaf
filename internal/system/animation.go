// internal/system/animation.go
package system

import (
	"sort"

	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
)

// AnimationSystem хранит не более одной анимации на сущность и продвигает их каждый кадр.
type AnimationSystem struct {
	ecs *entity.ECS
}

func NewAnimationSystem(ecs *entity.ECS, d *event.Dispatcher) *AnimationSystem {
	s := &AnimationSystem{ecs: ecs}
	d.Subscribe(event.AnimationEnded, s)
	return s
}

// Play заменяет текущую анимацию сущности и запускает новую.
// Прерванная анимация отпускает свои блокировки.
func (s *AnimationSystem) Play(id types.EntityID, a *anim.Animation) {
	if old, ok := s.ecs.Animations[id]; ok && old != a {
		old.Cancel()
	}
	if g, ok := s.ecs.Glyphs[id]; ok {
		g.OffsetX, g.OffsetY = 0, 0
	}
	s.ecs.Animations[id] = a
	a.Start()
}

// Active — есть ли у сущности анимация
func (s *AnimationSystem) Active(id types.EntityID) bool {
	_, ok := s.ecs.Animations[id]
	return ok
}

// Update продвигает анимации, существовавшие на начало кадра, в порядке id.
// Анимации, созданные обработчиками событий, начнут двигаться со следующего кадра.
func (s *AnimationSystem) Update(delta int) {
	type entry struct {
		id types.EntityID
		a  *anim.Animation
	}
	snapshot := make([]entry, 0, len(s.ecs.Animations))
	for id, a := range s.ecs.Animations {
		snapshot = append(snapshot, entry{id, a})
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].id < snapshot[j].id })

	for _, e := range snapshot {
		if s.ecs.Animations[e.id] != e.a {
			continue // заменена или снята в этом кадре
		}
		e.a.Update(delta)
	}
}

func (s *AnimationSystem) OnEvent(e event.Event) {
	if e.Type != event.AnimationEnded {
		return
	}
	if ref, ok := e.Data.(event.EntityRef); ok {
		delete(s.ecs.Animations, ref.Entity)
	}
}
