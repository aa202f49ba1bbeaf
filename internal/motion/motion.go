// internal/motion/motion.go
package motion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

var (
	// ErrWrongLayer — анимация в сетке, к которой сущность не привязана.
	ErrWrongLayer = errors.New("entity is not placed on the room's entity layer")
	// ErrZeroLengthPath — путь из одной клетки нельзя анимировать.
	ErrZeroLengthPath = errors.New("path has no steps")
	ErrPathStart      = errors.New("path does not start at the entity's cell")
)

const (
	bumpDistance = 8  // пикселей навстречу препятствию
	castLift     = -6 // подъём символа при касте
	shakeWidth   = 4
	shakeCycles  = 3
)

// Sound cue names carried by PlaySound events.
const (
	CueError = "error"
	CueBump  = "bump"
	CueThud  = "thud"
	CueSpell = "spell"
)

// Factory собирает конкретные анимации. Все они, кроме Idle, блокирующие:
// первый кадр шлёт BeginBlocking, последний EndBlocking и AnimationEnded.
type Factory struct {
	ecs  *entity.ECS
	room *room.Room
	bus  event.Bus
}

func NewFactory(ecs *entity.ECS, r *room.Room, bus event.Bus) *Factory {
	return &Factory{ecs: ecs, room: r, bus: bus}
}

func (f *Factory) placed(id types.EntityID) (*component.Cell, error) {
	cell, ok := f.ecs.Cells[id]
	if !ok || !cell.Placed || cell.Layer != component.LayerEntity || f.room.Occupant(cell.Hex) != id {
		slog.Warn("animation requested for entity outside the entity layer", "entity", id)
		return nil, fmt.Errorf("entity %d: %w", id, ErrWrongLayer)
	}
	return cell, nil
}

func begin() event.Event {
	return event.Event{Type: event.BeginBlocking}
}

func end(id types.EntityID, extra ...event.Event) []event.Event {
	evs := append([]event.Event{}, extra...)
	return append(evs,
		event.Event{Type: event.EndBlocking},
		event.Event{Type: event.AnimationEnded, Data: event.EntityRef{Entity: id}},
	)
}

func sound(cue string) event.Event {
	return event.Event{Type: event.PlaySound, Data: event.SoundData{Cue: cue}}
}

// Move — сглаженное перемещение в соседнюю пустую клетку. Занятость
// переносится в последнем кадре.
func (f *Factory) Move(id types.EntityID, dest hexmap.Hex, duration int) (*anim.Animation, error) {
	if _, err := f.placed(id); err != nil {
		return nil, err
	}
	pos := f.ecs.Positions[id]
	dx, dy := dest.ToPixel()
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin()}},
			{Timestamp: duration, Events: end(id, event.Event{Type: event.MoveStep, Data: event.MoveStepData{Entity: id, Dest: dest}})},
		},
		[]anim.Tween{{Duration: duration, Ease: anim.CosineInOut, Track: positionTrack{pos, pos.X, pos.Y, dx, dy}}},
		false, f.bus)
}

// Path — проход по пути, по твину на ребро. На каждом промежуточном кадре
// сущность переезжает в очередную клетку.
func (f *Factory) Path(id types.EntityID, path []hexmap.Hex, step int) (*anim.Animation, error) {
	if len(path) < 2 {
		return nil, ErrZeroLengthPath
	}
	cell, err := f.placed(id)
	if err != nil {
		return nil, err
	}
	if cell.Hex != path[0] {
		return nil, fmt.Errorf("entity %d at (%d, %d), path from (%d, %d): %w",
			id, cell.Hex.Row, cell.Hex.Col, path[0].Row, path[0].Col, ErrPathStart)
	}
	pos := f.ecs.Positions[id]

	keyframes := make([]anim.KeyFrame, 0, len(path))
	tweens := make([]anim.Tween, 0, len(path)-1)
	keyframes = append(keyframes, anim.KeyFrame{Timestamp: 0, Events: []event.Event{begin()}})
	for i := 1; i < len(path); i++ {
		fx, fy := path[i-1].ToPixel()
		tx, ty := path[i].ToPixel()
		tweens = append(tweens, anim.Tween{Duration: step, Ease: anim.Linear, Track: positionTrack{pos, fx, fy, tx, ty}})

		evs := []event.Event{{Type: event.MoveStep, Data: event.MoveStepData{Entity: id, Dest: path[i]}}}
		if i == len(path)-1 {
			evs = end(id, evs...)
		}
		keyframes = append(keyframes, anim.KeyFrame{Timestamp: i * step, Events: evs})
	}
	return anim.New(keyframes, tweens, false, f.bus)
}

// Bump — рывок на несколько пикселей к занятой клетке и обратно.
// В середине разрешается столкновение.
func (f *Factory) Bump(id types.EntityID, dest hexmap.Hex, duration int) (*anim.Animation, error) {
	cell, err := f.placed(id)
	if err != nil {
		return nil, err
	}
	pos := f.ecs.Positions[id]
	sx, sy := cell.Hex.ToPixel()
	dx, dy := dest.ToPixel()
	dist := math.Hypot(dx-sx, dy-sy)
	ox, oy := sx, sy
	if dist > 0 {
		ox = sx + math.Round((dx-sx)*bumpDistance/dist)
		oy = sy + math.Round((dy-sy)*bumpDistance/dist)
	}
	out := duration / 2
	back := duration - out
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin()}},
			{Timestamp: out, Events: []event.Event{{Type: event.BumpResolve, Data: event.BumpData{Actor: id, Target: dest}}}},
			{Timestamp: duration, Events: end(id, event.Event{Type: event.SnapToCell, Data: event.EntityRef{Entity: id}})},
		},
		[]anim.Tween{
			{Duration: out, Ease: anim.CosineInOut, Track: positionTrack{pos, sx, sy, ox, oy}},
			{Duration: back, Ease: anim.CosineInOut, Track: positionTrack{pos, ox, oy, sx, sy}},
		},
		false, f.bus)
}

// Cast — подъём символа; эффект заклинания срабатывает ровно один раз в середине.
func (f *Factory) Cast(id types.EntityID, spell event.Spell, duration int) (*anim.Animation, error) {
	if _, err := f.placed(id); err != nil {
		return nil, err
	}
	glyph := f.ecs.Glyphs[id]
	up := duration / 2
	down := duration - up
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin()}},
			{Timestamp: up, Events: []event.Event{
				{Type: event.CastSpell, Data: event.CastData{Caster: id, Spell: spell}},
				sound(CueSpell),
			}},
			{Timestamp: duration, Events: end(id)},
		},
		[]anim.Tween{
			{Duration: up, Ease: anim.CosineInOut, Track: offsetTrack{glyph, true, castLift}},
			{Duration: down, Ease: func(p float64) float64 { return 1 - anim.CosineInOut(p) }, Track: offsetTrack{glyph, true, castLift}},
		},
		false, f.bus)
}

// FadeIn проявляет сущность и по окончании запускает покачивание.
func (f *Factory) FadeIn(id types.EntityID, duration int) (*anim.Animation, error) {
	glyph := f.ecs.Glyphs[id]
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin()}},
			{Timestamp: duration, Events: append(end(id), event.Event{Type: event.StartIdle, Data: event.EntityRef{Entity: id}})},
		},
		[]anim.Tween{{Duration: duration, Ease: anim.Linear, Track: alphaTrack{glyph, 0, 1}}},
		false, f.bus)
}

// FadeOut гасит сущность и удаляет её из хранилища.
// Сущность к этому моменту уже убрана из комнаты, поэтому привязка не проверяется.
func (f *Factory) FadeOut(id types.EntityID, duration int) (*anim.Animation, error) {
	glyph := f.ecs.Glyphs[id]
	from := 1.0
	if glyph != nil {
		from = glyph.Alpha
	}
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin()}},
			{Timestamp: duration, Events: append(end(id), event.Event{Type: event.Destroy, Data: event.EntityRef{Entity: id}})},
		},
		[]anim.Tween{{Duration: duration, Ease: anim.Linear, Track: alphaTrack{glyph, from, 0}}},
		false, f.bus)
}

// Shake — затухающая тряска по горизонтали в ответ на невозможное действие.
func (f *Factory) Shake(id types.EntityID, duration int) (*anim.Animation, error) {
	glyph := f.ecs.Glyphs[id]
	return anim.New(
		[]anim.KeyFrame{
			{Timestamp: 0, Events: []event.Event{begin(), sound(CueError)}},
			{Timestamp: duration, Events: end(id)},
		},
		[]anim.Tween{{Duration: duration, Ease: anim.Damped(shakeCycles), Track: offsetTrack{glyph, false, shakeWidth}}},
		false, f.bus)
}

// Idle — бесконечное вертикальное покачивание. Не блокирует ходы.
func (f *Factory) Idle(id types.EntityID, magnitude float64, period int) (*anim.Animation, error) {
	glyph := f.ecs.Glyphs[id]
	return anim.New(
		[]anim.KeyFrame{{Timestamp: 0}, {Timestamp: period}},
		[]anim.Tween{{Duration: period, Ease: anim.Sine, Track: offsetTrack{glyph, true, magnitude}}},
		true, f.bus)
}
