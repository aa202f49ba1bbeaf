// pkg/render/color.go
package render

import "image/color"

// Palette holds the colors a renderer needs besides those carried by the scene.
type Palette struct {
	Background color.RGBA
	Hover      color.RGBA
	Edge       color.RGBA
	Pointer    color.RGBA
	Text       color.RGBA
	Frame      color.RGBA
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// Blend смешивает c с фоном bg пропорционально alpha. Нужен там, где
// прозрачности нет (терминал).
func Blend(c, bg color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 1 {
		return c
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*alpha + float64(b)*(1-alpha) + 0.5)
	}
	return color.RGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 255}
}
