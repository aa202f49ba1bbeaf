// internal/system/render.go
package system

import (
	"fmt"

	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
	"go-hex-summoner/pkg/render"
)

// SceneSystem собирает кадр: абсолютные координаты считаются один раз,
// сверху вниз от начала комнаты.
type SceneSystem struct {
	world *World
}

func NewSceneSystem(w *World) *SceneSystem {
	return &SceneSystem{world: w}
}

// Build строит сцену для экрана width x height. pointer может быть nil.
func (s *SceneSystem) Build(width, height int, pointer *render.Point, status string) *render.Scene {
	r := s.world.Room
	rx, ry := r.Origin()
	scene := &render.Scene{
		Width:   width,
		Height:  height,
		Room:    render.Rect{X: rx, Y: ry, W: float64(r.PixelWidth()), H: float64(r.PixelHeight())},
		Pointer: pointer,
		Status:  status,
	}

	gx, gy := r.Ground.Origin()
	r.Ground.Each(func(h hexmap.Hex, t room.Tile) {
		x, y := h.ToPixel()
		fill := t.Fill
		if t.Hovered {
			fill = config.HoverColor
		}
		scene.Hexes = append(scene.Hexes, render.Hexagon{X: rx + gx + x, Y: ry + gy + y, Fill: fill, Hovered: t.Hovered})
	})

	tx, ty := r.Text.Origin()
	r.Text.Each(func(h hexmap.Hex, o room.Overlay) {
		if o.Rune == 0 || o.Alpha <= 0 {
			return
		}
		x, y := h.ToPixel()
		scene.Overlay = append(scene.Overlay, render.Glyph{X: rx + tx + x, Y: ry + ty + y, Rune: o.Rune, Color: o.Color, Alpha: o.Alpha})
	})

	// Сущности: сначала живые в порядке комнаты, затем исчезающие трупы.
	ex, ey := r.Entities.Origin()
	drawn := make(map[types.EntityID]bool)
	add := func(id types.EntityID) {
		g, ok := s.world.ECS.Glyphs[id]
		pos, hasPos := s.world.ECS.Positions[id]
		if !ok || !hasPos || drawn[id] {
			return
		}
		drawn[id] = true
		scene.Entities = append(scene.Entities, render.Glyph{
			X:     rx + ex + pos.X + g.OffsetX,
			Y:     ry + ey + pos.Y + g.OffsetY,
			Rune:  g.Rune,
			Color: g.Color,
			Alpha: g.Alpha,
		})
	}
	for _, id := range r.List() {
		add(id)
	}
	for id := types.EntityID(1); id < s.world.ECS.NextID; id++ {
		add(id)
	}
	return scene
}

// Status — строка состояния для HUD.
func Status(phase string, round, pending int, kills int) string {
	return fmt.Sprintf("round %d  turn: %s  animating: %d  kills: %d", round, phase, pending, kills)
}
