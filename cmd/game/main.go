// cmd/game/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go-hex-summoner/internal/app"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/sound"
)

// Флаги, общие для всех режимов.
var (
	configPath string
	watch      bool
	seed       int64
	mute       bool
	manual     bool
	debug      bool
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "hexsummon",
	Short: "Animated hex-grid toy: a wanderer and the summoners hunting it",
	Long: `hexsummon runs a small hex room where the player wanders and summoners
call minions to box it in. Every move is animated; turns wait for animations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd, args)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML settings file overriding the built-in defaults")
	pf.BoolVar(&watch, "watch", false, "reload the settings file when it changes")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVar(&mute, "mute", false, "disable sound")
	pf.BoolVar(&manual, "manual", false, "wait for space before each player turn")
	pf.BoolVar(&debug, "debug", false, "verbose logging")
	pf.StringVar(&logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(windowCmd, termCmd, simCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

// setupLogging настраивает slog. quiet — stderr занят интерфейсом (терминал).
func setupLogging(quiet bool) (io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	switch {
	case logPath != "":
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		out, closer = f, f
	case quiet:
		out = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// loadConfig читает настройки и, если нужно, запускает наблюдение за файлом.
func loadConfig() (config.Config, *config.Watcher, error) {
	if configPath == "" {
		if watch {
			slog.Warn("--watch needs --config; ignoring")
		}
		return config.Default(), nil, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if !watch {
		return cfg, nil, nil
	}
	w, err := config.NewWatcher(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("watch %s: %w", configPath, err)
	}
	go func() {
		for err := range w.Errors {
			slog.Warn("config reload failed", "path", configPath, "err", err)
		}
	}()
	return cfg, w, nil
}

// soundPlayer возвращает синтезатор или беззвучный Player.
func soundPlayer(cfg config.Config) (sound.Player, func()) {
	if mute {
		return sound.Nop{}, func() {}
	}
	synth, err := sound.NewSynth(cfg.Sound.Volume)
	if err != nil {
		slog.Warn("sound disabled", "err", err)
		return sound.Nop{}, func() {}
	}
	return synth, synth.Close
}

// newGame собирает игру со всем окружением. cleanup нужно вызвать при выходе.
func newGame(withSound bool, clock app.Clock) (*app.Game, func(), error) {
	cfg, watcher, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	var player sound.Player = sound.Nop{}
	stopSound := func() {}
	if withSound {
		player, stopSound = soundPlayer(cfg)
	}
	g, err := app.NewGame(cfg, app.Options{Seed: seed, Manual: manual, Sound: player, Clock: clock})
	if err != nil {
		stopSound()
		if watcher != nil {
			_ = watcher.Close()
		}
		return nil, nil, err
	}
	if watcher != nil {
		g.WatchConfig(watcher.Updates)
	}
	cleanup := func() {
		stopSound()
		if watcher != nil {
			_ = watcher.Close()
		}
	}
	return g, cleanup, nil
}
