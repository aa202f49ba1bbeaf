// pkg/hexmap/pathfinding.go
package hexmap

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

// ErrUnreachable is returned when no path leads to the destination.
var ErrUnreachable = errors.New("destination unreachable")

// NoEdge marks a direction without an edge.
const NoEdge = 0

// Vertex — вершина графа поиска пути
type Vertex struct {
	Hex       Hex
	Distance  float64
	Finalized bool
	// Edges[d] is 1 when the neighbor in direction d is an empty cell, NoEdge otherwise.
	Edges [6]int
}

// Chooser picks an index in [0, n). *utils.PRNGService satisfies it.
type Chooser interface {
	Intn(n int) int
}

// Graph строится заново на каждый запрос: занятость ячеек меняется каждый ход.
type Graph struct {
	layout   Layout
	vertices map[Hex]*Vertex
}

// BuildGraph создаёт вершину для каждой допустимой ячейки. Ребро ведёт
// только в пустую ячейку, поэтому из занятой клетки рёбра лишь выходят.
func BuildGraph(layout Layout, isEmpty func(Hex) bool) *Graph {
	g := &Graph{layout: layout, vertices: make(map[Hex]*Vertex, layout.Size())}
	for _, h := range layout.Cells() {
		v := &Vertex{Hex: h, Distance: math.Inf(1)}
		for i, n := range h.Neighbors() {
			if layout.Valid(n) && isEmpty(n) {
				v.Edges[i] = 1
			} else {
				v.Edges[i] = NoEdge
			}
		}
		g.vertices[h] = v
	}
	return g
}

// Vertex returns the vertex for h.
func (g *Graph) Vertex(h Hex) (*Vertex, bool) {
	v, ok := g.vertices[h]
	return v, ok
}

// CalculateDistances — алгоритм Дейкстры от src. Останавливается, как только
// извлечён dst или очередь опустела. Возвращает +Inf для недостижимой цели.
func (g *Graph) CalculateDistances(src, dst Hex) (float64, error) {
	source, ok := g.vertices[src]
	if !ok {
		return math.Inf(1), fmt.Errorf("source (%d, %d): %w", src.Row, src.Col, ErrNoCell)
	}
	if _, ok := g.vertices[dst]; !ok {
		return math.Inf(1), fmt.Errorf("destination (%d, %d): %w", dst.Row, dst.Col, ErrNoCell)
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	source.Distance = 0
	seq := 0
	heap.Push(pq, &Node{Vertex: source, Cost: 0, Seq: seq})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		v := current.Vertex
		if v.Finalized || current.Cost > v.Distance {
			continue // устаревшая запись
		}
		if math.IsInf(current.Cost, 1) {
			break
		}
		v.Finalized = true
		if v.Hex == dst {
			break
		}
		for i, n := range v.Hex.Neighbors() {
			if v.Edges[i] == NoEdge {
				continue
			}
			next := g.vertices[n]
			if next.Finalized {
				continue
			}
			newCost := v.Distance + float64(v.Edges[i])
			if newCost < next.Distance {
				next.Distance = newCost
				seq++
				heap.Push(pq, &Node{Vertex: next, Cost: newCost, Seq: seq})
			}
		}
	}
	return g.vertices[dst].Distance, nil
}

// ReconstructPath идёт от dst к источнику по финализированным соседям с
// минимальной меньшей дистанцией. Равные варианты выбираются случайно,
// поэтому путь не детерминирован. Результат упорядочен от источника к цели.
func (g *Graph) ReconstructPath(dst Hex, rng Chooser) ([]Hex, error) {
	cur, ok := g.vertices[dst]
	if !ok {
		return nil, fmt.Errorf("destination (%d, %d): %w", dst.Row, dst.Col, ErrNoCell)
	}
	if !cur.Finalized || math.IsInf(cur.Distance, 1) {
		return nil, fmt.Errorf("(%d, %d): %w", dst.Row, dst.Col, ErrUnreachable)
	}

	path := []Hex{cur.Hex}
	candidates := make([]*Vertex, 0, 6)
	for cur.Distance > 0 {
		best := math.Inf(1)
		candidates = candidates[:0]
		for i, n := range cur.Hex.Neighbors() {
			v, ok := g.vertices[n]
			if !ok || !v.Finalized {
				continue
			}
			if v.Edges[Direction(i).Opposite()] == NoEdge || v.Distance >= cur.Distance {
				continue
			}
			if v.Distance < best {
				best = v.Distance
				candidates = candidates[:0]
			}
			if v.Distance == best {
				candidates = append(candidates, v)
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("broken distance field at (%d, %d): %w", cur.Hex.Row, cur.Hex.Col, ErrUnreachable)
		}
		pick := 0
		if rng != nil && len(candidates) > 1 {
			pick = rng.Intn(len(candidates))
		}
		cur = candidates[pick]
		path = append(path, cur.Hex)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// FindPath строит граф, считает расстояния и восстанавливает путь от src до dst.
func FindPath(layout Layout, isEmpty func(Hex) bool, src, dst Hex, rng Chooser) ([]Hex, error) {
	g := BuildGraph(layout, isEmpty)
	if _, err := g.CalculateDistances(src, dst); err != nil {
		return nil, err
	}
	return g.ReconstructPath(dst, rng)
}

// PriorityQueue для Дейкстры: минимальная стоимость наверху, при равенстве — порядок вставки.
type PriorityQueue []*Node

type Node struct {
	Vertex *Vertex
	Cost   float64
	Seq    int
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
