// component/render.go
package component

import "image/color"

// Glyph — компонент для отрисовки текстовым символом
type Glyph struct {
	Rune  rune
	Color color.RGBA
	Alpha float64 // 0..1, управляется анимациями появления/исчезновения
	// Косметическое смещение (покачивание, тряска); не влияет на позицию.
	OffsetX, OffsetY float64
}
