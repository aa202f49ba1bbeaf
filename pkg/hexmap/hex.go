// pkg/hexmap/hex.go
package hexmap

import (
	"fmt"

	"go-hex-summoner/pkg/utils"
)

// Геометрия шестиугольника в пикселях (плоская верхняя грань).
const (
	Edge = 30 // длина горизонтальной грани
	Rise = 26 // половина высоты гекса
	Run  = 15 // горизонтальный вылет наклонной грани
)

// Hex — адрес ячейки в "удвоенных строках": соседи по вертикали отстоят на 2 строки.
type Hex struct {
	Row, Col int
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d, %d)", h.Row, h.Col)
}

// Direction — одно из шести направлений соседства.
type Direction int

const (
	N Direction = iota
	NE
	SE
	S
	SW
	NW
)

// Directions lists all six directions clockwise from north.
var Directions = [6]Direction{N, NE, SE, S, SW, NW}

// DirectionOffsets holds the (row, col) delta for each Direction.
// The order must match the Direction constants.
var DirectionOffsets = [6]Hex{
	{Row: -2, Col: 0},
	{Row: -1, Col: 1},
	{Row: 1, Col: 1},
	{Row: 2, Col: 0},
	{Row: 1, Col: -1},
	{Row: -1, Col: -1},
}

func (d Direction) String() string {
	switch d {
	case N:
		return "N"
	case NE:
		return "NE"
	case SE:
		return "SE"
	case S:
		return "S"
	case SW:
		return "SW"
	case NW:
		return "NW"
	}
	return "?"
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// Neighbor возвращает соседа в заданном направлении (без проверки границ)
func (h Hex) Neighbor(dir Direction) Hex {
	return h.Add(DirectionOffsets[dir])
}

// Neighbors возвращает всех шестерых возможных соседей
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, off := range DirectionOffsets {
		out[i] = h.Add(off)
	}
	return out
}

// DirectionTo reports which direction leads from h to an adjacent hex o.
func (h Hex) DirectionTo(o Hex) (Direction, bool) {
	d := o.Subtract(h)
	for i, off := range DirectionOffsets {
		if off == d {
			return Direction(i), true
		}
	}
	return 0, false
}

// IsAdjacent reports whether o is one of h's six neighbors.
func (h Hex) IsAdjacent(o Hex) bool {
	_, ok := h.DirectionTo(o)
	return ok
}

// ToPixel конвертирует ячейку в пиксели относительно начала сетки
func (h Hex) ToPixel() (x, y float64) {
	return float64(h.Col * (Edge + Run)), float64(h.Row * Rise)
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{Row: h.Row + other.Row, Col: h.Col + other.Col}
}

// Subtract возвращает разность двух гексов
func (h Hex) Subtract(other Hex) Hex {
	return Hex{Row: h.Row - other.Row, Col: h.Col - other.Col}
}

// Distance вычисляет число шагов между гексами без учёта препятствий.
// Each step changes the column by at most one and the row by at most two,
// so the first |dc| steps also cover |dc| rows.
func (h Hex) Distance(to Hex) int {
	dr := utils.Abs(h.Row - to.Row)
	dc := utils.Abs(h.Col - to.Col)
	if dr <= dc {
		return dc
	}
	return dc + (dr-dc)/2
}
