// internal/turn/scheduler.go
package turn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"

	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/types"
)

// Фазы хода
const (
	PhasePlayer  = "player"
	PhaseEnemies = "enemies"

	eventPlayerDone  = "player_done"
	eventEnemiesDone = "enemies_done"
)

// PlayerFunc выполняет ход игрока. false — ход ещё не сделан, повторить в следующем кадре.
type PlayerFunc func(ctx context.Context) bool

// EnemyFunc выполняет ход одного врага.
type EnemyFunc func(ctx context.Context, id types.EntityID)

// RosterFunc возвращает врагов, которые будут ходить в этом раунде, по порядку.
type RosterFunc func() []types.EntityID

// Scheduler владеет счётчиком блокирующих анимаций и чередует ходы.
// Логика хода запускается только при нулевом счётчике.
type Scheduler struct {
	pending int
	phase   *fsm.FSM

	manual    bool
	triggered bool

	round int
	queue []types.EntityID

	bus    event.Bus
	player PlayerFunc
	enemy  EnemyFunc
	roster RosterFunc
}

// New создаёт планировщик в фазе игрока.
func New(player PlayerFunc, enemy EnemyFunc, roster RosterFunc, bus event.Bus) *Scheduler {
	s := &Scheduler{
		bus:    bus,
		player: player,
		enemy:  enemy,
		roster: roster,
	}
	s.phase = fsm.NewFSM(
		PhasePlayer,
		fsm.Events{
			{Name: eventPlayerDone, Src: []string{PhasePlayer}, Dst: PhaseEnemies},
			{Name: eventEnemiesDone, Src: []string{PhaseEnemies}, Dst: PhasePlayer},
		},
		fsm.Callbacks{
			"enter_" + PhaseEnemies: func(_ context.Context, e *fsm.Event) {
				s.queue = s.roster()
			},
			"enter_" + PhasePlayer: func(_ context.Context, e *fsm.Event) {
				s.round++
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("turn phase", "from", e.Src, "to", e.Dst, "round", s.round)
			},
		},
	)
	return s
}

// SetManual включает режим, в котором ход игрока ждёт Trigger.
func (s *Scheduler) SetManual(manual bool) { s.manual = manual }

// Trigger разрешает следующий ход игрока в ручном режиме.
func (s *Scheduler) Trigger() { s.triggered = true }

// BeginBlocking — блокирующая анимация началась.
func (s *Scheduler) BeginBlocking() { s.pending++ }

// EndBlocking — блокирующая анимация закончилась. Уход в минус — нарушение
// инварианта, после которого ходы не сойдутся, поэтому паника.
func (s *Scheduler) EndBlocking() {
	if s.pending <= 0 {
		panic(fmt.Sprintf("turn: blocking counter underflow (pending=%d)", s.pending))
	}
	s.pending--
}

// Pending — число блокирующих анимаций в полёте.
func (s *Scheduler) Pending() int { return s.pending }

// Blocked — логика хода должна ждать.
func (s *Scheduler) Blocked() bool { return s.pending > 0 }

// Phase returns PhasePlayer or PhaseEnemies.
func (s *Scheduler) Phase() string { return s.phase.Current() }

// Round — номер раунда, начиная с нуля.
func (s *Scheduler) Round() int { return s.round }

// Remaining — сколько врагов ещё не ходило в этом раунде.
func (s *Scheduler) Remaining() int { return len(s.queue) }

// OnEvent подключает планировщик к шине событий.
func (s *Scheduler) OnEvent(ev event.Event) {
	switch ev.Type {
	case event.BeginBlocking:
		s.BeginBlocking()
	case event.EndBlocking:
		s.EndBlocking()
	}
}

// Subscribe регистрирует планировщик на события блокировки.
func (s *Scheduler) Subscribe(d *event.Dispatcher) {
	d.Subscribe(event.BeginBlocking, s)
	d.Subscribe(event.EndBlocking, s)
}

// Advance выполняет не больше одного действия: ход игрока или ход одного врага.
// Вызывается раз в кадр после обновления анимаций.
func (s *Scheduler) Advance(ctx context.Context) error {
	if s.Blocked() {
		return nil
	}
	switch s.phase.Current() {
	case PhasePlayer:
		if s.manual && !s.triggered {
			return nil
		}
		if !s.player(ctx) {
			return nil
		}
		s.triggered = false
		s.notify(PhasePlayer)
		return s.phase.Event(ctx, eventPlayerDone)
	case PhaseEnemies:
		if len(s.queue) == 0 {
			s.notify(PhaseEnemies)
			return s.phase.Event(ctx, eventEnemiesDone)
		}
		id := s.queue[0]
		s.queue = s.queue[1:]
		s.enemy(ctx, id)
	}
	return nil
}

func (s *Scheduler) notify(phase string) {
	if s.bus != nil {
		s.bus.Dispatch(event.Event{Type: event.TurnEnded, Data: event.TurnData{Phase: phase, Turn: s.round}})
	}
}
