// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PhaseIndicator — кружок в углу: цвет показывает, чей ход, при смене
// фазы кружок коротко вспухает. Клик по нему в ручном режиме даёт следующий ход.
type PhaseIndicator struct {
	X, Y       float32
	Radius     float32
	LastChange time.Time

	phase string
}

func NewPhaseIndicator(x, y, radius float32) *PhaseIndicator {
	return &PhaseIndicator{X: x, Y: y, Radius: radius}
}

// SetPhase запоминает фазу; при смене запускает пульс.
func (i *PhaseIndicator) SetPhase(phase string, now time.Time) {
	if phase != i.phase {
		i.phase = phase
		i.LastChange = now
	}
}

// Scale — множитель радиуса через elapsed после смены фазы.
func Scale(elapsed time.Duration) float64 {
	return 1.0 + 0.3*math.Exp(-elapsed.Seconds()*8)
}

// Draw отрисовывает индикатор
func (i *PhaseIndicator) Draw(screen *ebiten.Image, fill, outline color.Color, now time.Time) {
	r := i.Radius * float32(Scale(now.Sub(i.LastChange)))
	vector.DrawFilledCircle(screen, i.X, i.Y, r, fill, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, outline, true)
}

// Contains проверяет, попала ли точка в индикатор
func (i *PhaseIndicator) Contains(x, y float64) bool {
	dx, dy := x-float64(i.X), y-float64(i.Y)
	return dx*dx+dy*dy <= float64(i.Radius*i.Radius)
}
