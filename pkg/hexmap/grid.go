package hexmap

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoCell is returned when a coordinate has the wrong parity or lies outside the grid.
var ErrNoCell = errors.New("no such cell")

// Grid — разреженная гексагональная сетка: хранит значения только в допустимых ячейках.
// Каждая строка хранит ячейки через одну, поэтому индекс столбца делится на 2.
type Grid[T any] struct {
	Layout

	// OnSet вызывается после успешной записи значения.
	OnSet func(h Hex, v T)

	x, y float64
	rows [][]T
}

// NewGrid создаёт пустую сетку с началом координат (x, y)
func NewGrid[T any](layout Layout, x, y float64) *Grid[T] {
	rows := make([][]T, layout.NumRows)
	for row := range rows {
		first := (row + layout.Parity) % 2
		n := 0
		if first < layout.NumCols {
			n = (layout.NumCols - first + 1) / 2
		}
		rows[row] = make([]T, n)
	}
	return &Grid[T]{Layout: layout, x: x, y: y, rows: rows}
}

// Origin returns the grid's pixel offset relative to its parent.
func (g *Grid[T]) Origin() (x, y float64) {
	return g.x, g.y
}

// SetOrigin moves the grid relative to its parent.
func (g *Grid[T]) SetOrigin(x, y float64) {
	g.x, g.y = x, y
}

func (g *Grid[T]) index(row, col int) (int, int, error) {
	h := Hex{Row: row, Col: col}
	if !g.Valid(h) {
		slog.Warn("invalid hex grid access", "row", row, "col", col, "parity", g.Parity)
		return 0, 0, fmt.Errorf("(%d, %d): %w", row, col, ErrNoCell)
	}
	return row, col / 2, nil
}

// Get возвращает значение ячейки (возможно нулевое)
func (g *Grid[T]) Get(row, col int) (T, error) {
	var zero T
	i, j, err := g.index(row, col)
	if err != nil {
		return zero, err
	}
	return g.rows[i][j], nil
}

// At is Get addressed by Hex.
func (g *Grid[T]) At(h Hex) (T, error) {
	return g.Get(h.Row, h.Col)
}

// Set записывает значение в ячейку. Недопустимые координаты не меняют состояние.
func (g *Grid[T]) Set(row, col int, v T) error {
	i, j, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.rows[i][j] = v
	if g.OnSet != nil {
		g.OnSet(Hex{Row: row, Col: col}, v)
	}
	return nil
}

// Clear сбрасывает ячейку в нулевое значение
func (g *Grid[T]) Clear(row, col int) error {
	var zero T
	i, j, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.rows[i][j] = zero
	return nil
}

// Each walks every valid cell in row-major order.
func (g *Grid[T]) Each(fn func(h Hex, v T)) {
	for row, cells := range g.rows {
		first := (row + g.Parity) % 2
		for j, v := range cells {
			fn(Hex{Row: row, Col: first + 2*j}, v)
		}
	}
}
