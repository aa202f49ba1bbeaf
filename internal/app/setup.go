// internal/app/setup.go
package app

import (
	"fmt"

	"go-hex-summoner/internal/config"
	"go-hex-summoner/internal/room"
	"go-hex-summoner/pkg/hexmap"
)

// furnish раскладывает пол, декоративные символы, стены по краю,
// игрока и призывателей.
func (g *Game) furnish() error {
	r := g.Room
	for _, h := range r.Cells() {
		if err := r.Ground.Set(h.Row, h.Col, room.Tile{Fill: config.GroundColor}); err != nil {
			return err
		}
		if err := r.Text.Set(h.Row, h.Col, room.Overlay{Rune: config.OverlayGlyph, Color: config.OverlayColor, Alpha: 1}); err != nil {
			return err
		}
	}

	for _, h := range borderCells(r.Layout) {
		if !r.IsEmpty(h) {
			continue
		}
		if _, err := g.SpawnSystem.SpawnWall(h); err != nil {
			return err
		}
	}

	parity := r.Parity
	start, err := g.freeCell(hexmap.Hex{Row: 4, Col: 2 + parity})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if g.PlayerID, err = g.SpawnSystem.SpawnPlayer(start); err != nil {
		return err
	}

	for i := 0; i < g.cfg.Summoner.Count; i++ {
		h, err := g.freeCell(hexmap.Hex{Row: 6 + 2*i, Col: 2 + parity})
		if err != nil {
			return fmt.Errorf("summoner %d: %w", i, err)
		}
		if _, err := g.SpawnSystem.SpawnSummoner(h); err != nil {
			return err
		}
	}
	return nil
}

// freeCell возвращает preferred, если она свободна, иначе случайную свободную клетку.
func (g *Game) freeCell(preferred hexmap.Hex) (hexmap.Hex, error) {
	if g.Room.IsEmpty(preferred) {
		return preferred, nil
	}
	empty := g.Room.EmptyCells()
	if len(empty) == 0 {
		return hexmap.Hex{}, fmt.Errorf("room is full: %w", room.ErrOccupied)
	}
	return empty[g.Rng.Intn(len(empty))], nil
}

// borderCells — клетки рамки: верхний и нижний зигзаг и боковые столбцы.
func borderCells(l hexmap.Layout) []hexmap.Hex {
	var out []hexmap.Hex
	add := func(h hexmap.Hex) {
		if l.Valid(h) {
			out = append(out, h)
		}
	}
	for col := 0; col < l.NumCols; col++ {
		off := (col + l.Parity) % 2
		add(hexmap.Hex{Row: off, Col: col})
		add(hexmap.Hex{Row: l.NumRows - 1 - off, Col: col})
	}
	for row := l.Parity; row < l.NumRows; row += 2 {
		add(hexmap.Hex{Row: row, Col: 0})
		add(hexmap.Hex{Row: row, Col: l.NumCols - 1})
	}
	return out
}
