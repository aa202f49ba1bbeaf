// internal/state/game_state.go
package state

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"go-hex-summoner/internal/app"
	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/turn"
	"go-hex-summoner/internal/ui"
	"go-hex-summoner/pkg/render"
)

// GameState — комната на экране. Ввод: ЛКМ — цель игрока, пробел или клик
// по индикатору — следующий ход в ручном режиме, P — пауза.
type GameState struct {
	sm        *StateMachine
	game      *app.Game
	renderer  *render.HexRenderer
	indicator *ui.PhaseIndicator
}

func NewGameState(sm *StateMachine, g *app.Game, renderer *render.HexRenderer) *GameState {
	return &GameState{
		sm:       sm,
		game:     g,
		renderer: renderer,
		indicator: ui.NewPhaseIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX),
			float32(config.IndicatorRadius),
		),
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Update(ctx context.Context) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.Trigger()
	}

	x, y := ebiten.CursorPosition()
	inside := image.Pt(x, y).In(image.Rect(0, 0, config.ScreenWidth, config.ScreenHeight))
	g.game.SetPointer(float64(x), float64(y), inside)
	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.indicator.Contains(float64(x), float64(y)) {
			g.game.Trigger()
		} else {
			g.game.Click(float64(x), float64(y))
		}
	}

	if err := g.game.Update(ctx); err != nil {
		return err
	}
	g.indicator.SetPhase(g.game.Scheduler.Phase(), time.Now())
	return nil
}

// scene строит кадр под размер экрана.
func (g *GameState) scene(screen *ebiten.Image) *render.Scene {
	b := screen.Bounds()
	return g.game.Scene(b.Dx(), b.Dy())
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Target = screen
	g.renderer.Render(g.scene(screen))

	fill := config.PlayerPhaseColor
	if g.game.Scheduler.Phase() == turn.PhaseEnemies {
		fill = config.EnemiesPhaseColor
	}
	g.indicator.Draw(screen, fill, config.TextLightColor, time.Now())
}

func (g *GameState) Exit() {}
