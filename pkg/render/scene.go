// pkg/render/scene.go
package render

import "image/color"

// Hexagon — клетка пола. X, Y — левый верхний угол описанного прямоугольника
// в абсолютных координатах экрана.
type Hexagon struct {
	X, Y    float64
	Fill    color.RGBA
	Hovered bool
}

// Glyph — символ, центрированный в точке X, Y.
type Glyph struct {
	X, Y  float64
	Rune  rune
	Color color.RGBA
	Alpha float64
}

// Point is an absolute screen position.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Scene — всё, что нужно нарисовать в одном кадре. Все координаты уже абсолютные.
// Рендерер только читает сцену.
type Scene struct {
	Width, Height int
	Room          Rect
	Hexes         []Hexagon
	Overlay       []Glyph
	Entities      []Glyph
	Pointer       *Point
	Status        string
}

// Renderer рисует сцену и ничего не возвращает ядру.
type Renderer interface {
	Render(scene *Scene)
}
