package room

import (
	"math"

	"go-hex-summoner/pkg/hexmap"
	"go-hex-summoner/pkg/utils"
)

// Box — размеры символа от его центра.
type Box struct {
	Left, Right, Up, Down float64
}

// GlyphBox — приблизительный габарит символа комнаты. Ядро не знает метрик шрифта.
var GlyphBox = Box{Left: 12, Right: 12, Up: 16, Down: 16}

// CoveringAlpha — насколько должен быть виден базовый символ (bx, by), когда
// над ним проходит символ (cx, cy): меньшее из доли непересечения габаритов
// и плавного спада по расстоянию между центрами.
func CoveringAlpha(cx, cy float64, cover Box, bx, by float64, base Box) float64 {
	minX := math.Max(cx-cover.Left, bx-base.Left)
	maxX := math.Min(cx+cover.Right, bx+base.Right)
	minY := math.Max(cy-cover.Up, by-base.Up)
	maxY := math.Min(cy+cover.Down, by+base.Down)

	boxAlpha := 1.0
	if minX < maxX && minY < maxY {
		ratioX := 1 - (maxX-minX)/math.Min(cover.Left+cover.Right, base.Left+base.Right)
		ratioY := 1 - (maxY-minY)/math.Min(cover.Up+cover.Down, base.Up+base.Down)
		boxAlpha = math.Max(ratioX, ratioY)
	}

	const ramp = 0.4 * hexmap.Rise
	distAlpha := utils.Clamp01((math.Hypot(cx-bx, cy-by) - ramp) / ramp)

	return math.Min(boxAlpha, distAlpha)
}
