// component/movement.go
package component

import "go-hex-summoner/pkg/hexmap"

// Position — компонент позиции в пикселях относительно слоя сущностей
type Position struct {
	X, Y float64
}

// LayerID — слой комнаты, в котором стоит сущность
type LayerID int

const (
	LayerNone LayerID = iota
	LayerEntity
)

// Cell — текущий адрес сущности в сетке. Обновляется только сеткой при Set.
type Cell struct {
	Hex    hexmap.Hex
	Placed bool
	Layer  LayerID
}
