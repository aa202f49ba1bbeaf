// internal/app/game.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/event"
	"go-hex-summoner/internal/motion"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/sound"
	"go-hex-summoner/internal/system"
	"go-hex-summoner/internal/turn"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/internal/utils"
	"go-hex-summoner/pkg/hexmap"
	"go-hex-summoner/pkg/render"
)

// Options — внешние зависимости игры. Нулевые значения заменяются безопасными.
type Options struct {
	Seed   int64
	Manual bool
	Sound  sound.Player
	Clock  Clock
}

// Game holds the main game state and logic.
type Game struct {
	ECS             *entity.ECS
	Room            *room.Room
	EventDispatcher *event.Dispatcher
	World           *system.World
	Scheduler       *turn.Scheduler
	Rng             *utils.PRNGService

	AnimationSystem *system.AnimationSystem
	MovementSystem  *system.MovementSystem
	CombatSystem    *system.CombatSystem
	SpawnSystem     *system.SpawnSystem
	AISystem        *system.AISystem
	PlayerSystem    *system.PlayerSystem
	OverlaySystem   *system.OverlaySystem
	SceneSystem     *system.SceneSystem
	SoundSystem     *system.SoundSystem

	PlayerID types.EntityID

	cfg     config.Config
	clock   Clock
	prev    time.Time
	started bool
	reloads <-chan config.Config

	pointer *render.Point
	stats   Stats
}

// Stats — счётчики для команды sim и строки состояния.
type Stats struct {
	Frames  int
	Rounds  int
	Kills   int
	Spawned int
	Steps   int
	Alive   int
}

// NewGame собирает комнату, системы и начальные сущности.
func NewGame(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	layout := hexmap.NewLayout(cfg.Room.Rows, cfg.Room.Cols, cfg.Room.Parity)
	r := room.New(layout, ecs)

	g := &Game{
		ECS:             ecs,
		Room:            r,
		EventDispatcher: dispatcher,
		Rng:             utils.NewPRNGService(opts.Seed),
		cfg:             cfg,
		clock:           opts.Clock,
	}
	g.World = &system.World{
		ECS:    ecs,
		Room:   r,
		Bus:    dispatcher,
		Motion: motion.NewFactory(ecs, r, dispatcher),
		RNG:    g.Rng,
		Config: &g.cfg,
	}
	g.AnimationSystem = system.NewAnimationSystem(ecs, dispatcher)
	g.World.Anims = g.AnimationSystem
	g.MovementSystem = system.NewMovementSystem(g.World)
	g.CombatSystem = system.NewCombatSystem(g.World)
	g.SpawnSystem = system.NewSpawnSystem(g.World)
	g.AISystem = system.NewAISystem(g.World)
	g.PlayerSystem = system.NewPlayerSystem(g.World)
	g.OverlaySystem = system.NewOverlaySystem(g.World)
	g.SceneSystem = system.NewSceneSystem(g.World)
	g.SoundSystem = system.NewSoundSystem(dispatcher, opts.Sound)
	g.SoundSystem.SetMuted(cfg.Sound.Muted)

	g.Scheduler = turn.New(g.PlayerSystem.Act, g.AISystem.Act, g.AISystem.Roster, dispatcher)
	g.Scheduler.SetManual(opts.Manual)
	g.Scheduler.Subscribe(dispatcher)

	listener := &GameEventListener{game: g}
	dispatcher.Subscribe(event.EntityKilled, listener)
	dispatcher.Subscribe(event.EntitySpawned, listener)
	dispatcher.Subscribe(event.TurnEnded, listener)

	if err := g.furnish(); err != nil {
		return nil, fmt.Errorf("build room: %w", err)
	}
	slog.Info("game ready", "seed", g.Rng.Seed(), "rows", layout.NumRows, "cols", layout.NumCols, "entities", len(r.List()))
	return g, nil
}

// Config returns the settings currently in effect.
func (g *Game) Config() config.Config { return g.cfg }

// WatchConfig подключает канал горячей перезагрузки. Значения применяются между кадрами.
func (g *Game) WatchConfig(updates <-chan config.Config) { g.reloads = updates }

func (g *Game) applyReloads() {
	if g.reloads == nil {
		return
	}
	for {
		select {
		case next, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			if next.Room != g.cfg.Room {
				slog.Warn("room geometry changes need a restart; keeping current room")
				next.Room = g.cfg.Room
			}
			g.cfg = next
			g.SoundSystem.SetMuted(next.Sound.Muted)
		default:
			return
		}
	}
}

// Update читает часы и продвигает игру на прошедшее время.
func (g *Game) Update(ctx context.Context) error {
	now := g.clock.Now()
	if !g.started {
		g.started = true
		g.prev = now
	}
	delta := int(now.Sub(g.prev) / time.Millisecond)
	g.prev = now
	delta = min(max(delta, 0), config.MaxDeltaTime)
	return g.Step(ctx, delta)
}

// Step — один кадр: анимации, затем логика хода, затем оверлей.
func (g *Game) Step(ctx context.Context, delta int) error {
	g.applyReloads()
	g.stats.Frames++
	g.AnimationSystem.Update(delta)
	if err := g.Scheduler.Advance(ctx); err != nil {
		return fmt.Errorf("advance turn: %w", err)
	}
	g.OverlaySystem.Update()
	return nil
}

// SetPointer обновляет положение курсора (ok=false — курсор вне окна).
func (g *Game) SetPointer(x, y float64, ok bool) {
	if !ok {
		g.pointer = nil
		g.Room.SetHover(hexmap.Hex{}, false)
		return
	}
	g.pointer = &render.Point{X: x, Y: y}
	h, in := g.Room.CellAt(x, y)
	g.Room.SetHover(h, in && g.Room.Valid(h))
}

// Click задаёт цель следующего хода игрока.
func (g *Game) Click(x, y float64) {
	h, ok := g.Room.CellAt(x, y)
	if !ok || !g.Room.Valid(h) {
		return
	}
	g.PlayerSystem.SetTarget(h)
}

// Trigger разрешает следующий ход в ручном режиме.
func (g *Game) Trigger() { g.Scheduler.Trigger() }

// Layout центрирует комнату на экране.
func (g *Game) Layout(width, height int) {
	x := float64((width - g.Room.PixelWidth()) / 2)
	y := float64((height - g.Room.PixelHeight()) / 2)
	g.Room.SetOrigin(x, y)
}

// Scene собирает кадр для рендерера.
func (g *Game) Scene(width, height int) *render.Scene {
	g.Layout(width, height)
	st := g.Stats()
	status := system.Status(g.Scheduler.Phase(), g.Scheduler.Round(), g.Scheduler.Pending(), st.Kills)
	return g.SceneSystem.Build(width, height, g.pointer, status)
}

// Stats returns a snapshot of the counters.
func (g *Game) Stats() Stats {
	st := g.stats
	st.Rounds = g.Scheduler.Round()
	st.Alive = len(g.Room.List())
	if p, ok := g.ECS.Players[g.PlayerID]; ok {
		st.Steps = p.Steps
	}
	return st
}

// GameEventListener считает игровые уведомления.
type GameEventListener struct {
	game *Game
}

func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.EntityKilled:
		l.game.stats.Kills++
		if data, ok := e.Data.(event.KilledData); ok {
			slog.Debug("entity killed", "entity", data.Entity, "killer", data.Killer)
		}
	case event.EntitySpawned:
		l.game.stats.Spawned++
	case event.TurnEnded:
		if data, ok := e.Data.(event.TurnData); ok {
			slog.Debug("turn ended", "phase", data.Phase, "round", data.Turn)
		}
	}
}
