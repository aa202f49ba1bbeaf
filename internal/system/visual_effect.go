// internal/system/visual_effect.go
package system

import (
	"math"

	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

// OverlaySystem каждый кадр пересчитывает прозрачность декоративных символов:
// под стоящей сущностью символ скрыт, под движущейся — плавно гаснет.
type OverlaySystem struct {
	world *World
}

func NewOverlaySystem(w *World) *OverlaySystem {
	return &OverlaySystem{world: w}
}

func (s *OverlaySystem) Update() {
	r := s.world.Room
	alpha := make(map[hexmap.Hex]float64)

	r.Entities.Each(func(h hexmap.Hex, id types.EntityID) {
		if id == types.None {
			return
		}
		if _, moving := s.world.ECS.Animations[id]; !moving {
			alpha[h] = 0
			return
		}
		pos := s.world.ECS.Positions[id]
		cx, cy := pos.X, pos.Y
		if g, ok := s.world.ECS.Glyphs[id]; ok {
			cx += g.OffsetX
			cy += g.OffsetY
		}
		// Центр символа в координатах комнаты.
		cx += room.GlyphOffsetX
		cy += room.GlyphOffsetY
		box := room.GlyphBox
		for _, c := range r.CellsInRect(cx-box.Left, cy-box.Up, box.Left+box.Right, box.Up+box.Down) {
			if !r.Valid(c) {
				continue
			}
			bx, by := c.ToPixel()
			a := room.CoveringAlpha(cx, cy, box, bx+room.GlyphOffsetX, by+room.GlyphOffsetY, box)
			if cur, ok := alpha[c]; ok {
				a = math.Min(cur, a)
			}
			alpha[c] = a
		}
	})

	r.Text.Each(func(h hexmap.Hex, o room.Overlay) {
		a, ok := alpha[h]
		if !ok {
			a = 1
		}
		if o.Alpha != a {
			o.Alpha = a
			_ = r.Text.Set(h.Row, h.Col, o)
		}
	})
}
