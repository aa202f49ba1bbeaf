package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(40, 12)
	t.Cleanup(s.Fini)
	return s
}

var testPalette = Palette{
	Background: color.RGBA{0x28, 0x28, 0x28, 255},
	Text:       color.RGBA{240, 240, 240, 255},
}

func TestToCellRoundTrip(t *testing.T) {
	x, y := ToPixel(7, 3)
	cx, cy := ToCell(x, y)
	assert.Equal(t, 7, cx)
	assert.Equal(t, 3, cy)
}

func TestTermRendererDrawsGlyphOnGround(t *testing.T) {
	s := newSimScreen(t)
	r := NewTermRenderer(s, testPalette)

	ground := color.RGBA{0x0A, 0x33, 0x00, 255}
	red := color.RGBA{255, 0, 0, 255}
	// гекс в (0, 0): центр попадает в клетку (2, 1)
	scene := &Scene{
		Hexes:    []Hexagon{{X: 0, Y: 0, Fill: ground}},
		Entities: []Glyph{{X: 30, Y: 26, Rune: '@', Color: red, Alpha: 1}},
		Status:   "player 1",
	}
	r.Render(scene)

	ch, _, style, _ := s.GetContent(2, 1)
	assert.Equal(t, '@', ch)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, rgb(red), fg)
	assert.Equal(t, rgb(ground), bg)

	_, _, side, _ := s.GetContent(1, 1)
	_, sideBg, _ := side.Decompose()
	assert.Equal(t, rgb(ground), sideBg)

	ch, _, _, _ = s.GetContent(0, 11)
	assert.Equal(t, 'p', ch)
}

func TestTermRendererBlendsTranslucentGlyph(t *testing.T) {
	s := newSimScreen(t)
	r := NewTermRenderer(s, testPalette)

	white := color.RGBA{255, 255, 255, 255}
	r.Render(&Scene{Entities: []Glyph{{X: 45, Y: 52, Rune: 'x', Color: white, Alpha: 0.5}}})

	ch, _, style, _ := s.GetContent(3, 2)
	assert.Equal(t, 'x', ch)
	fg, _, _ := style.Decompose()
	assert.Equal(t, rgb(Blend(white, testPalette.Background, 0.5)), fg)
}

func TestTermRendererSkipsInvisibleGlyph(t *testing.T) {
	s := newSimScreen(t)
	r := NewTermRenderer(s, testPalette)

	r.Render(&Scene{Entities: []Glyph{{X: 45, Y: 52, Rune: 'x', Alpha: 0}}})

	ch, _, _, _ := s.GetContent(3, 2)
	assert.Equal(t, ' ', ch)
}
