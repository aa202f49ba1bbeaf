package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"go-hex-summoner/internal/app"
	"go-hex-summoner/internal/config"
)

var (
	simFrames int
	simDelta  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the room headless on a fake clock and print counters",
	RunE:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&simFrames, "frames", 3000, "number of frames to simulate")
	simCmd.Flags().IntVar(&simDelta, "delta", 16, "milliseconds per frame")
}

func runSim(cmd *cobra.Command, _ []string) error {
	closer, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	if simDelta <= 0 || simDelta > config.MaxDeltaTime {
		return fmt.Errorf("--delta must be in 1..%d", config.MaxDeltaTime)
	}

	clock := app.NewManualClock()
	g, cleanup, err := newGame(false, clock)
	if err != nil {
		return err
	}
	defer cleanup()
	// Ручной режим без нажатий остановил бы игрока навсегда.
	g.Scheduler.SetManual(false)

	ctx := cmd.Context()
	started := time.Now()
	for i := 0; i < simFrames; i++ {
		clock.Advance(time.Duration(simDelta) * time.Millisecond)
		if err := g.Update(ctx); err != nil {
			return err
		}
	}

	st := g.Stats()
	slog.Info("simulation done", "frames", st.Frames, "elapsed", time.Since(started))
	fmt.Fprintf(cmd.OutOrStdout(), "rounds=%d kills=%d spawned=%d steps=%d alive=%d\n",
		st.Rounds, st.Kills, st.Spawned, st.Steps, st.Alive)
	return nil
}
