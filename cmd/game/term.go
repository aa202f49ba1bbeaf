package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"go-hex-summoner/internal/app"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/pkg/render"
)

const frameInterval = 16 * time.Millisecond

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	Long:  "Play in the terminal. Mouse picks the target, space steps in --manual mode, p pauses, q quits.",
	RunE:  runTerm,
}

func runTerm(cmd *cobra.Command, _ []string) error {
	closer, err := setupLogging(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	g, cleanup, err := newGame(true, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	renderer := render.NewTermRenderer(screen, render.Palette{
		Background: config.BackgroundColor,
		Text:       config.TextLightColor,
	})

	ctx := cmd.Context()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen, events, done)

	paused := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					g.Trigger()
				case ev.Rune() == 'p':
					paused = !paused
				}
			case *tcell.EventMouse:
				handleMouse(g, ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			if !paused {
				if err := g.Update(ctx); err != nil {
					return err
				}
			}
			w, h := renderer.PixelSize()
			renderer.Render(g.Scene(w, h))
		}
	}
}

// pumpEvents перекладывает ввод tcell в канал, пока не закрыт done или экран.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func handleMouse(g *app.Game, ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := render.ToPixel(cx, cy)
	g.SetPointer(x, y, true)
	if ev.Buttons()&tcell.Button1 != 0 {
		g.Click(x, y)
	}
}
