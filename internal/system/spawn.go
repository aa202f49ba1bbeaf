// internal/system/spawn.go
package system

import (
	"fmt"
	"image/color"
	"log/slog"

	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

// SpawnSystem создаёт и уничтожает сущности и исполняет заклинания призыва.
type SpawnSystem struct {
	world *World
}

func NewSpawnSystem(w *World) *SpawnSystem {
	s := &SpawnSystem{world: w}
	w.Bus.Subscribe(event.CastSpell, s)
	w.Bus.Subscribe(event.StartIdle, s)
	w.Bus.Subscribe(event.Destroy, s)
	return s
}

func (s *SpawnSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.CastSpell:
		if data, ok := e.Data.(event.CastData); ok {
			s.cast(data)
		}
	case event.StartIdle:
		if ref, ok := e.Data.(event.EntityRef); ok && s.world.Room.Contains(ref.Entity) {
			t := s.world.Config.Timing
			a, err := s.world.Motion.Idle(ref.Entity, t.IdleMagnitude, t.IdlePeriodMS)
			s.world.play(ref.Entity, a, err, "idle")
		}
	case event.Destroy:
		if ref, ok := e.Data.(event.EntityRef); ok {
			s.world.ECS.Destroy(ref.Entity)
		}
	}
}

func (s *SpawnSystem) spawn(h hexmap.Hex, r rune, c color.RGBA, alpha float64) (types.EntityID, error) {
	ecs := s.world.ECS
	id := ecs.NewEntity()
	ecs.Glyphs[id] = &component.Glyph{Rune: r, Color: c, Alpha: alpha}
	if err := s.world.Room.Place(id, h); err != nil {
		ecs.Destroy(id)
		return types.None, err
	}
	return id, nil
}

// SpawnWall ставит неподвижную стену.
func (s *SpawnSystem) SpawnWall(h hexmap.Hex) (types.EntityID, error) {
	id, err := s.spawn(h, config.WallGlyph, config.WallColor, 1)
	if err != nil {
		return types.None, fmt.Errorf("spawn wall: %w", err)
	}
	s.world.ECS.Walls[id] = &component.Wall{}
	return id, nil
}

// SpawnPlayer ставит игрока сразу видимым.
func (s *SpawnSystem) SpawnPlayer(h hexmap.Hex) (types.EntityID, error) {
	id, err := s.spawn(h, config.PlayerGlyph, config.PlayerColor, 1)
	if err != nil {
		return types.None, fmt.Errorf("spawn player: %w", err)
	}
	s.world.ECS.Players[id] = &component.Player{}
	return id, nil
}

// SpawnSummoner ставит призывателя; он проявляется и начинает покачиваться.
func (s *SpawnSystem) SpawnSummoner(h hexmap.Hex) (types.EntityID, error) {
	id, err := s.spawn(h, config.SummonerGlyph, config.SummonerColor, 0)
	if err != nil {
		return types.None, fmt.Errorf("spawn summoner: %w", err)
	}
	cfg := s.world.Config.Summoner
	s.world.ECS.Enemies[id] = &component.Enemy{}
	s.world.ECS.Summoners[id] = &component.Summoner{
		Mana:    min(cfg.StartMana, cfg.MaxMana),
		MaxMana: cfg.MaxMana,
		Limit:   cfg.Limit,
	}
	s.fadeIn(id)
	return id, nil
}

// SpawnSummons призывает приспешника и записывает его в список призывателя.
func (s *SpawnSystem) SpawnSummons(summoner types.EntityID, h hexmap.Hex) (types.EntityID, error) {
	id, err := s.spawn(h, config.SummonsGlyph, config.SummonsColor, 0)
	if err != nil {
		return types.None, fmt.Errorf("spawn summons: %w", err)
	}
	ecs := s.world.ECS
	ecs.Enemies[id] = &component.Enemy{}
	ecs.Summons[id] = &component.Summons{Summoner: summoner}
	if sm, ok := ecs.Summoners[summoner]; ok {
		sm.Children = append(sm.Children, id)
	}
	s.fadeIn(id)
	s.world.Bus.Dispatch(event.Event{Type: event.EntitySpawned, Data: event.EntityRef{Entity: id}})
	return id, nil
}

func (s *SpawnSystem) fadeIn(id types.EntityID) {
	a, err := s.world.Motion.FadeIn(id, s.world.Config.Timing.FadeInMS)
	s.world.play(id, a, err, "fade-in")
}

func (s *SpawnSystem) cast(data event.CastData) {
	sm, ok := s.world.ECS.Summoners[data.Caster]
	if !ok || !s.world.Room.Contains(data.Caster) {
		return
	}
	var cells []hexmap.Hex
	switch data.Spell {
	case event.SpellSummon:
		empty := s.world.Room.EmptyCells()
		if len(empty) > 0 {
			cells = append(cells, empty[s.world.RNG.Intn(len(empty))])
		}
	case event.SpellBoxIn:
		player, ok := s.world.PlayerID()
		if !ok {
			return
		}
		around := s.world.Room.EmptyNeighbors(s.world.ECS.Cells[player].Hex)
		s.world.RNG.Shuffle(len(around), func(i, j int) { around[i], around[j] = around[j], around[i] })
		cells = around[:min(sm.Limit, len(around))]
	}
	if len(cells) == 0 {
		slog.Debug("spell fizzled: no room", "caster", data.Caster, "spell", data.Spell)
		return
	}
	for _, h := range cells {
		if _, err := s.SpawnSummons(data.Caster, h); err != nil {
			slog.Warn("summon failed", "caster", data.Caster, "error", err)
		}
	}
}
