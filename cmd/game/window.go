package main

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/state"
	"go-hex-summoner/pkg/render"
)

var skipMenu bool

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a window (default)",
	RunE:  runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&skipMenu, "skip-menu", false, "start straight in the room")
}

// AppGame адаптирует машину состояний к ebiten.Game.
type AppGame struct {
	ctx          context.Context
	stateMachine *state.StateMachine
}

func (a *AppGame) Update() error {
	return a.stateMachine.Update(a.ctx)
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func runWindow(cmd *cobra.Command, _ []string) error {
	closer, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	g, cleanup, err := newGame(true, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	palette := render.Palette{
		Background: config.BackgroundColor,
		Hover:      config.HoverColor,
		Edge:       config.EdgeColor,
		Pointer:    config.PointerColor,
		Text:       config.TextLightColor,
		Frame:      config.EdgeColor,
	}
	renderer, err := render.NewHexRenderer(palette, config.GlyphFontSize, config.HUDFontSize)
	if err != nil {
		return err
	}
	titleFace, err := render.NewFace(config.TitleFontSize)
	if err != nil {
		return err
	}

	sm := state.NewStateMachine()
	play := state.NewGameState(sm, g, renderer)
	if skipMenu {
		sm.SetState(play)
	} else {
		sm.SetState(state.NewMenuState(sm, play, titleFace, renderer.HUDFace()))
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Hex Summoner")
	return ebiten.RunGame(&AppGame{ctx: cmd.Context(), stateMachine: sm})
}
