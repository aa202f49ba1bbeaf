// internal/event/types.go
package event

import (
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

// События ключевых кадров анимаций
const (
	BeginBlocking  EventType = "BeginBlocking"  // анимация блокирует ход
	EndBlocking    EventType = "EndBlocking"    // блокирующая анимация закончилась
	AnimationEnded EventType = "AnimationEnded" // отвязать анимацию от сущности
	MoveStep       EventType = "MoveStep"       // перенести сущность в ячейку
	SnapToCell     EventType = "SnapToCell"     // вернуть сущность в центр её ячейки
	BumpResolve    EventType = "BumpResolve"    // удар в занятую ячейку
	CastSpell      EventType = "CastSpell"      // игровой эффект заклинания
	PlaySound      EventType = "PlaySound"
	StartIdle      EventType = "StartIdle"
	Destroy        EventType = "Destroy" // удалить сущность из ECS
)

// Игровые уведомления
const (
	EntitySpawned EventType = "EntitySpawned"
	EntityKilled  EventType = "EntityKilled"
	TurnEnded     EventType = "TurnEnded"
)

// Spell identifies what a cast animation triggers at its midpoint.
type Spell int

const (
	SpellSummon Spell = iota // один призванный в случайной пустой ячейке
	SpellBoxIn               // окружить игрока призванными
)

func (s Spell) String() string {
	switch s {
	case SpellSummon:
		return "summon"
	case SpellBoxIn:
		return "box-in"
	}
	return "unknown"
}

// EntityRef carries just the subject of an event.
type EntityRef struct {
	Entity types.EntityID
}

// MoveStepData — перемещение сущности в ячейку Dest
type MoveStepData struct {
	Entity types.EntityID
	Dest   hexmap.Hex
}

// BumpData — Actor ударился о ячейку Target
type BumpData struct {
	Actor  types.EntityID
	Target hexmap.Hex
}

// CastData — заклинание Caster
type CastData struct {
	Caster types.EntityID
	Spell  Spell
}

// SoundData names a sound cue.
type SoundData struct {
	Cue string
}

// KilledData reports a death and who caused it (None for cascades).
type KilledData struct {
	Entity types.EntityID
	Killer types.EntityID
}

// TurnData reports which side just finished its turn.
type TurnData struct {
	Phase string
	Turn  int
}
