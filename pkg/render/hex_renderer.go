package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"go-hex-summoner/pkg/hexmap"
)

// HexRenderer рисует сцену в окне ebiten. Target задаётся перед каждым Render.
type HexRenderer struct {
	Target *ebiten.Image

	palette   Palette
	glyphFace font.Face
	hudFace   font.Face
	fillImg   *ebiten.Image
	fillVs    []ebiten.Vertex
	fillIs    []uint16
	strokeVs  []ebiten.Vertex
	strokeIs  []uint16
}

// NewFace загружает моноширинный шрифт Go заданного размера.
func NewFace(size float64) (font.Face, error) {
	tt, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("render: face %.0f: %w", size, err)
	}
	return face, nil
}

// NewHexRenderer готовит шрифты для символов и строки состояния.
func NewHexRenderer(palette Palette, glyphSize, hudSize float64) (*HexRenderer, error) {
	glyphFace, err := NewFace(glyphSize)
	if err != nil {
		return nil, err
	}
	hudFace, err := NewFace(hudSize)
	if err != nil {
		return nil, err
	}

	fillImg := ebiten.NewImage(1, 1)
	fillImg.Fill(color.White)

	return &HexRenderer{
		palette:   palette,
		glyphFace: glyphFace,
		hudFace:   hudFace,
		fillImg:   fillImg,
		fillVs:    make([]ebiten.Vertex, 0, 18),
		fillIs:    make([]uint16, 0, 18),
		strokeVs:  make([]ebiten.Vertex, 0, 36),
		strokeIs:  make([]uint16, 0, 36),
	}, nil
}

// HUDFace returns the font used for the status line.
func (r *HexRenderer) HUDFace() font.Face { return r.hudFace }

func (r *HexRenderer) Render(scene *Scene) {
	screen := r.Target
	if screen == nil || scene == nil {
		return
	}
	screen.Fill(r.palette.Background)

	for _, h := range scene.Hexes {
		r.drawHex(screen, h)
	}
	for _, g := range scene.Overlay {
		r.drawGlyph(screen, g)
	}
	for _, g := range scene.Entities {
		r.drawGlyph(screen, g)
	}

	vector.StrokeRect(screen, float32(scene.Room.X), float32(scene.Room.Y), float32(scene.Room.W), float32(scene.Room.H), 1, r.palette.Frame, false)
	if p := scene.Pointer; p != nil {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, r.palette.Pointer, true)
	}
	if scene.Status != "" {
		text.Draw(screen, scene.Status, r.hudFace, 10, 20, r.palette.Text)
	}
}

// hexPath — шестиугольник с плоским верхом, вписанный в прямоугольник от (x, y).
func hexPath(x, y float32) *vector.Path {
	const (
		e = float32(hexmap.Edge)
		h = float32(hexmap.Rise)
		n = float32(hexmap.Run)
	)
	path := &vector.Path{}
	path.MoveTo(x, y+h)
	path.LineTo(x+n, y+2*h)
	path.LineTo(x+e+n, y+2*h)
	path.LineTo(x+e+2*n, y+h)
	path.LineTo(x+e+n, y)
	path.LineTo(x+n, y)
	path.Close()
	return path
}

func (r *HexRenderer) drawHex(target *ebiten.Image, hex Hexagon) {
	path := hexPath(float32(hex.X), float32(hex.Y))

	r.fillVs, r.fillIs = path.AppendVerticesAndIndicesForFilling(r.fillVs[:0], r.fillIs[:0])
	paint(r.fillVs, hex.Fill)
	target.DrawTriangles(r.fillVs, r.fillIs, r.fillImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})

	r.strokeVs, r.strokeIs = path.AppendVerticesAndIndicesForStroke(r.strokeVs[:0], r.strokeIs[:0], &vector.StrokeOptions{Width: 1})
	paint(r.strokeVs, r.palette.Edge)
	target.DrawTriangles(r.strokeVs, r.strokeIs, r.fillImg, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func paint(vs []ebiten.Vertex, c color.RGBA) {
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
}

func (r *HexRenderer) drawGlyph(target *ebiten.Image, g Glyph) {
	if g.Alpha <= 0 {
		return
	}
	s := string(g.Rune)
	b := text.BoundString(r.glyphFace, s)
	x := int(g.X) - (b.Min.X+b.Max.X)/2
	y := int(g.Y) - (b.Min.Y+b.Max.Y)/2
	clr := color.NRGBA{R: g.Color.R, G: g.Color.G, B: g.Color.B, A: uint8(min(g.Alpha, 1) * 255)}
	text.Draw(target, s, r.glyphFace, x, y, clr)
}
