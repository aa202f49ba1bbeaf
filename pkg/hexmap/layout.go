package hexmap

import "math"

// Layout describes the shape of a hex room: its size in rows/columns and
// which (row+col) parity class is addressable.
type Layout struct {
	NumRows int
	NumCols int
	Parity  int
}

// NewLayout returns a layout with parity normalised to 0 or 1.
func NewLayout(rows, cols, parity int) Layout {
	return Layout{NumRows: rows, NumCols: cols, Parity: mod(parity, 2)}
}

// InBounds reports whether the coordinate is inside the rectangle, ignoring parity.
func (l Layout) InBounds(h Hex) bool {
	return h.Row >= 0 && h.Row < l.NumRows && h.Col >= 0 && h.Col < l.NumCols
}

// Valid проверяет границы и чётность
func (l Layout) Valid(h Hex) bool {
	return l.InBounds(h) && (h.Row+h.Col)%2 == l.Parity
}

// Cells возвращает все допустимые ячейки построчно
func (l Layout) Cells() []Hex {
	cells := make([]Hex, 0, l.Size())
	for row := 0; row < l.NumRows; row++ {
		for col := (row + l.Parity) % 2; col < l.NumCols; col += 2 {
			cells = append(cells, Hex{Row: row, Col: col})
		}
	}
	return cells
}

// Size returns the number of valid cells.
func (l Layout) Size() int {
	n := 0
	for row := 0; row < l.NumRows; row++ {
		first := (row + l.Parity) % 2
		if first < l.NumCols {
			n += (l.NumCols - first + 1) / 2
		}
	}
	return n
}

// PixelWidth returns the width of the room in pixels.
func (l Layout) PixelWidth() int {
	return l.NumCols*(Edge+Run) + Run
}

// PixelHeight returns the height of the room in pixels.
func (l Layout) PixelHeight() int {
	return l.NumRows*Rise + Rise
}

// PixelToCell находит ячейку, в которую попадает точка (x, y) относительно
// начала комнаты. Внутри наклонной полосы шириной Run решает знак
// векторного произведения с наклонной гранью.
func (l Layout) PixelToCell(x, y float64) (Hex, bool) {
	if x < 0 || x > float64(l.PixelWidth()) || y < 0 || y > float64(l.PixelHeight()) {
		return Hex{}, false
	}

	const block = Edge + Run
	col := int(math.Floor(x / block))
	inSlant := math.Mod(x, block) < Run
	rowBlock := int(math.Floor(y / Rise))

	tog := (l.Parity + rowBlock + col) % 2
	row := rowBlock - tog

	if inSlant {
		sign := 2*tog - 1
		cornerX := float64(col * block)
		cornerY := float64((row + 1) * Rise)
		cprod := (x-cornerX)*float64(sign*Rise) - (y-cornerY)*Run
		if cprod*float64(sign) < 0 {
			col--
			row += sign
		}
	}

	h := Hex{Row: row, Col: col}
	if !l.InBounds(h) {
		return Hex{}, false
	}
	return h, true
}

// CellsInRect перечисляет ячейки, область которых пересекает прямоугольник
// (x, y, w, h) в координатах комнаты.
func (l Layout) CellsInRect(x, y, w, h float64) []Hex {
	const block = Edge + Run
	minX, minY := x, y
	maxX, maxY := x+w, y+h

	minCol := max(int(math.Floor(minX/block))-1, 0)
	maxCol := min(int(math.Floor(maxX/block)), l.NumCols-1)

	minRowBlock := int(math.Floor(minY / Rise))
	maxRowBlock := int(math.Floor(maxY / Rise))

	var cells []Hex
	for col := minCol; col <= maxCol; col++ {
		minTog := mod(l.Parity+minRowBlock+col, 2)
		maxTog := mod(l.Parity+maxRowBlock+col, 2)

		rowMin := minRowBlock - minTog
		rowMax := maxRowBlock - maxTog

		for row := rowMin; row <= rowMax; row += 2 {
			if row >= 0 && row < l.NumRows {
				cells = append(cells, Hex{Row: row, Col: col})
			}
		}
	}
	return cells
}
