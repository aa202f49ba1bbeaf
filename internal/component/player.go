// internal/component/player.go
package component

// Player помечает сущность, управляемую игроком, и хранит счётчики для статистики.
type Player struct {
	Steps int // Сколько клеток пройдено
	Kills int
}
