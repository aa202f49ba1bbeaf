package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"go-hex-summoner/pkg/hexmap"
)

// Один символ терминала покрывает Run пикселей по горизонтали и Rise по
// вертикали: центр клетки (row, col) попадает в (3*col+2, row+1).
const (
	TermCellWidth  = hexmap.Run
	TermCellHeight = hexmap.Rise
)

// TermRenderer рисует сцену в терминале через tcell. Прозрачность
// имитируется смешиванием цвета символа с цветом пола.
type TermRenderer struct {
	screen  tcell.Screen
	palette Palette
	bg      map[[2]int]color.RGBA
}

func NewTermRenderer(screen tcell.Screen, palette Palette) *TermRenderer {
	return &TermRenderer{screen: screen, palette: palette, bg: make(map[[2]int]color.RGBA)}
}

// PixelSize — размер сцены в пикселях для текущего размера терминала.
func (r *TermRenderer) PixelSize() (int, int) {
	w, h := r.screen.Size()
	return w * TermCellWidth, h * TermCellHeight
}

// ToCell переводит пиксели сцены в клетку терминала.
func ToCell(x, y float64) (int, int) {
	return int(math.Round(x / TermCellWidth)), int(math.Round(y / TermCellHeight))
}

// ToPixel — обратное преобразование для событий мыши.
func ToPixel(cx, cy int) (float64, float64) {
	return float64(cx * TermCellWidth), float64(cy * TermCellHeight)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (r *TermRenderer) Render(scene *Scene) {
	if scene == nil {
		return
	}
	clear(r.bg)
	base := tcell.StyleDefault.Background(rgb(r.palette.Background))
	r.screen.Fill(' ', base)

	for _, h := range scene.Hexes {
		cx, cy := ToCell(h.X+hexmap.Edge/2+hexmap.Run, h.Y+hexmap.Rise)
		for dx := -1; dx <= 1; dx++ {
			r.bg[[2]int{cx + dx, cy}] = h.Fill
			r.screen.SetContent(cx+dx, cy, ' ', nil, base.Background(rgb(h.Fill)))
		}
	}
	for _, g := range scene.Overlay {
		r.glyph(g)
	}
	for _, g := range scene.Entities {
		r.glyph(g)
	}
	if scene.Status != "" {
		_, h := r.screen.Size()
		style := base.Foreground(rgb(r.palette.Text))
		for i, ch := range scene.Status {
			r.screen.SetContent(i, h-1, ch, nil, style)
		}
	}
	r.screen.Show()
}

func (r *TermRenderer) glyph(g Glyph) {
	if g.Alpha <= 0 {
		return
	}
	cx, cy := ToCell(g.X, g.Y)
	bg, ok := r.bg[[2]int{cx, cy}]
	if !ok {
		bg = r.palette.Background
	}
	style := tcell.StyleDefault.Background(rgb(bg)).Foreground(rgb(Blend(g.Color, bg, g.Alpha)))
	r.screen.SetContent(cx, cy, g.Rune, nil, style)
}
