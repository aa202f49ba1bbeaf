// internal/entity/ecs.go
package entity

import (
	"go-hex-summoner/internal/anim"
	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/types"
)

type ECS struct {
	NextID     types.EntityID
	Positions  map[types.EntityID]*component.Position
	Cells      map[types.EntityID]*component.Cell
	Glyphs     map[types.EntityID]*component.Glyph
	Animations map[types.EntityID]*anim.Animation // не больше одной на сущность
	Players    map[types.EntityID]*component.Player
	Enemies    map[types.EntityID]*component.Enemy
	Summoners  map[types.EntityID]*component.Summoner
	Summons    map[types.EntityID]*component.Summons
	Walls      map[types.EntityID]*component.Wall
}

func NewECS() *ECS {
	return &ECS{
		NextID:     1,
		Positions:  make(map[types.EntityID]*component.Position),
		Cells:      make(map[types.EntityID]*component.Cell),
		Glyphs:     make(map[types.EntityID]*component.Glyph),
		Animations: make(map[types.EntityID]*anim.Animation),
		Players:    make(map[types.EntityID]*component.Player),
		Enemies:    make(map[types.EntityID]*component.Enemy),
		Summoners:  make(map[types.EntityID]*component.Summoner),
		Summons:    make(map[types.EntityID]*component.Summons),
		Walls:      make(map[types.EntityID]*component.Wall),
	}
}

// NewEntity выдаёт новый идентификатор и сразу создаёт позицию и адрес,
// которые есть у каждой сущности.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	ecs.Positions[id] = &component.Position{}
	ecs.Cells[id] = &component.Cell{}
	return id
}

// Exists — жива ли сущность в хранилище
func (ecs *ECS) Exists(id types.EntityID) bool {
	_, ok := ecs.Positions[id]
	return ok
}

// Has проверяет наличие одной способности
func (ecs *ECS) Has(id types.EntityID, kind component.Kind) bool {
	var ok bool
	switch kind {
	case component.KindPlayer:
		_, ok = ecs.Players[id]
	case component.KindEnemy:
		_, ok = ecs.Enemies[id]
	case component.KindSummoner:
		_, ok = ecs.Summoners[id]
	case component.KindSummons:
		_, ok = ecs.Summons[id]
	case component.KindWall:
		_, ok = ecs.Walls[id]
	}
	return ok
}

// IsAll — есть ли все перечисленные способности
func (ecs *ECS) IsAll(id types.EntityID, kinds ...component.Kind) bool {
	for _, k := range kinds {
		if !ecs.Has(id, k) {
			return false
		}
	}
	return true
}

// IsOne — есть ли хотя бы одна
func (ecs *ECS) IsOne(id types.EntityID, kinds ...component.Kind) bool {
	for _, k := range kinds {
		if ecs.Has(id, k) {
			return true
		}
	}
	return false
}

// Kinds lists the capabilities of id in Kind order.
func (ecs *ECS) Kinds(id types.EntityID) []component.Kind {
	var out []component.Kind
	for _, k := range []component.Kind{component.KindPlayer, component.KindEnemy, component.KindSummoner, component.KindSummons, component.KindWall} {
		if ecs.Has(id, k) {
			out = append(out, k)
		}
	}
	return out
}

// Destroy удаляет все компоненты сущности. Анимация не отменяется:
// это делает вызывающая система.
func (ecs *ECS) Destroy(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Cells, id)
	delete(ecs.Glyphs, id)
	delete(ecs.Animations, id)
	delete(ecs.Players, id)
	delete(ecs.Enemies, id)
	delete(ecs.Summoners, id)
	delete(ecs.Summons, id)
	delete(ecs.Walls, id)
}
