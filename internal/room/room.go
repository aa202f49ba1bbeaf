// internal/room/room.go
package room

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"go-hex-summoner/internal/component"
	"go-hex-summoner/internal/entity"
	"go-hex-summoner/internal/types"
	"go-hex-summoner/pkg/hexmap"
)

var (
	ErrOccupied    = errors.New("cell occupied")
	ErrNotInRoom   = errors.New("entity is not placed in this room")
	ErrAlreadyHere = errors.New("entity already placed")
)

// Tile — клетка пола
type Tile struct {
	Fill    color.RGBA
	Hovered bool
}

// Overlay — декоративный символ поверх клетки. Alpha пересчитывается каждый кадр.
type Overlay struct {
	Rune  rune
	Color color.RGBA
	Alpha float64
}

// Room — три параллельных слоя с общей геометрией и список живых сущностей.
type Room struct {
	hexmap.Layout

	Ground   *hexmap.Grid[Tile]
	Text     *hexmap.Grid[Overlay]
	Entities *hexmap.Grid[types.EntityID]

	x, y float64
	ecs  *entity.ECS
	live []types.EntityID
}

// GlyphOffset — смещение слоёв символов к центру клетки.
const (
	GlyphOffsetX = hexmap.Edge/2 + hexmap.Run
	GlyphOffsetY = hexmap.Rise
)

// New создаёт пустую комнату.
func New(layout hexmap.Layout, ecs *entity.ECS) *Room {
	r := &Room{
		Layout:   layout,
		Ground:   hexmap.NewGrid[Tile](layout, 0, 0),
		Text:     hexmap.NewGrid[Overlay](layout, GlyphOffsetX, GlyphOffsetY),
		Entities: hexmap.NewGrid[types.EntityID](layout, GlyphOffsetX, GlyphOffsetY),
		ecs:      ecs,
	}
	r.Entities.OnSet = func(h hexmap.Hex, id types.EntityID) {
		if cell, ok := ecs.Cells[id]; ok {
			cell.Hex = h
			cell.Placed = true
			cell.Layer = component.LayerEntity
		}
	}
	return r
}

// Origin — положение комнаты на экране
func (r *Room) Origin() (x, y float64) { return r.x, r.y }

// SetOrigin двигает комнату; слои пересчитываются от неё при сборке сцены.
func (r *Room) SetOrigin(x, y float64) { r.x, r.y = x, y }

// Occupant возвращает сущность в клетке (None, если пусто или клетки нет).
func (r *Room) Occupant(h hexmap.Hex) types.EntityID {
	if !r.Valid(h) {
		return types.None
	}
	id, _ := r.Entities.At(h)
	return id
}

// IsEmpty — клетка существует и свободна. Именно это видит поиск пути.
func (r *Room) IsEmpty(h hexmap.Hex) bool {
	return r.Valid(h) && r.Occupant(h) == types.None
}

// EmptyCells перечисляет свободные клетки построчно.
func (r *Room) EmptyCells() []hexmap.Hex {
	var out []hexmap.Hex
	r.Entities.Each(func(h hexmap.Hex, id types.EntityID) {
		if id == types.None {
			out = append(out, h)
		}
	})
	return out
}

// EmptyNeighbors — свободные соседи h в порядке направлений.
func (r *Room) EmptyNeighbors(h hexmap.Hex) []hexmap.Hex {
	var out []hexmap.Hex
	for _, n := range h.Neighbors() {
		if r.IsEmpty(n) {
			out = append(out, n)
		}
	}
	return out
}

// List возвращает копию списка живых сущностей в порядке добавления.
func (r *Room) List() []types.EntityID {
	return append([]types.EntityID(nil), r.live...)
}

// Contains — находится ли сущность в комнате
func (r *Room) Contains(id types.EntityID) bool {
	for _, e := range r.live {
		if e == id {
			return true
		}
	}
	return false
}

// Place ставит сущность в пустую клетку и добавляет в список.
func (r *Room) Place(id types.EntityID, h hexmap.Hex) error {
	if r.Contains(id) {
		return fmt.Errorf("place %d: %w", id, ErrAlreadyHere)
	}
	if err := r.claim(id, h); err != nil {
		return fmt.Errorf("place %d: %w", id, err)
	}
	r.live = append(r.live, id)
	return nil
}

// Move переносит уже стоящую в комнате сущность в пустую клетку.
func (r *Room) Move(id types.EntityID, dest hexmap.Hex) error {
	cell, ok := r.ecs.Cells[id]
	if !ok || !cell.Placed || cell.Layer != component.LayerEntity || r.Occupant(cell.Hex) != id {
		slog.Warn("move of entity not parented to room", "entity", id)
		return fmt.Errorf("move %d: %w", id, ErrNotInRoom)
	}
	if cell.Hex == dest {
		return nil
	}
	from := cell.Hex
	if err := r.claim(id, dest); err != nil {
		return fmt.Errorf("move %d: %w", id, err)
	}
	return r.Entities.Clear(from.Row, from.Col)
}

// Remove убирает сущность из слоя и из списка за один вызов.
func (r *Room) Remove(id types.EntityID) error {
	idx := -1
	for i, e := range r.live {
		if e == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrNotInRoom)
	}
	r.live = append(r.live[:idx], r.live[idx+1:]...)
	if cell, ok := r.ecs.Cells[id]; ok && cell.Placed {
		if r.Occupant(cell.Hex) == id {
			if err := r.Entities.Clear(cell.Hex.Row, cell.Hex.Col); err != nil {
				return err
			}
		}
		cell.Placed = false
		cell.Layer = component.LayerNone
	}
	return nil
}

func (r *Room) claim(id types.EntityID, h hexmap.Hex) error {
	occupant, err := r.Entities.At(h)
	if err != nil {
		return err
	}
	if occupant != types.None {
		return fmt.Errorf("(%d, %d) holds %d: %w", h.Row, h.Col, occupant, ErrOccupied)
	}
	if err := r.Entities.Set(h.Row, h.Col, id); err != nil {
		return err
	}
	if pos, ok := r.ecs.Positions[id]; ok {
		pos.X, pos.Y = h.ToPixel()
	}
	return nil
}

// CellAt переводит экранные координаты в клетку комнаты.
func (r *Room) CellAt(screenX, screenY float64) (hexmap.Hex, bool) {
	return r.PixelToCell(screenX-r.x, screenY-r.y)
}

// SetHover подсвечивает одну клетку пола и гасит остальные.
func (r *Room) SetHover(h hexmap.Hex, ok bool) {
	r.Ground.Each(func(c hexmap.Hex, t Tile) {
		hovered := ok && c == h
		if t.Hovered != hovered {
			t.Hovered = hovered
			_ = r.Ground.Set(c.Row, c.Col, t)
		}
	})
}
