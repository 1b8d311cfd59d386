package world

import (
	"math"
	"slices"

	"github.com/turfwar/server/internal/core/ecs"
)

const gridCellSize = 100.0

type cellKey struct {
	cx, cy int32
}

func toCell(v float64) int32 {
	return int32(math.Floor(v / gridCellSize))
}

// Grid is a cell-based spatial index over unit positions. Callers do
// fine-grained distance filtering on the candidates it returns.
// Accessed only from the game loop goroutine, no locks.
type Grid struct {
	cells map[cellKey]map[ecs.EntityID]struct{}
}

func NewGrid() *Grid {
	return &Grid{
		cells: make(map[cellKey]map[ecs.EntityID]struct{}),
	}
}

func (g *Grid) key(p Vec) cellKey {
	return cellKey{cx: toCell(p.X), cy: toCell(p.Y)}
}

// Add places an entity into the grid.
func (g *Grid) Add(id ecs.EntityID, p Vec) {
	k := g.key(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes an entity out of the grid.
func (g *Grid) Remove(id ecs.EntityID, p Vec) {
	k := g.key(p)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an entity's cell when its position changes.
func (g *Grid) Move(id ecs.EntityID, from, to Vec) {
	if g.key(from) == g.key(to) {
		return
	}
	g.Remove(id, from)
	g.Add(id, to)
}

// Nearby returns all entity IDs in cells overlapping the square of
// half-size radius around p, in handle order. Once the square spans more
// cells than are occupied it walks the occupied cells instead, so the cost
// stays bounded by the population.
func (g *Grid) Nearby(p Vec, radius float64) []ecs.EntityID {
	x0, x1 := toCell(p.X-radius), toCell(p.X+radius)
	y0, y1 := toCell(p.Y-radius), toCell(p.Y+radius)
	var result []ecs.EntityID
	span := (int64(x1) - int64(x0) + 1) * (int64(y1) - int64(y0) + 1)
	if span > int64(len(g.cells)) {
		for k, cell := range g.cells {
			if k.cx < x0 || k.cx > x1 || k.cy < y0 || k.cy > y1 {
				continue
			}
			for id := range cell {
				result = append(result, id)
			}
		}
	} else {
		for cx := x0; cx <= x1; cx++ {
			for cy := y0; cy <= y1; cy++ {
				for id := range g.cells[cellKey{cx, cy}] {
					result = append(result, id)
				}
			}
		}
	}
	slices.Sort(result)
	return result
}

// Len returns the number of indexed entities.
func (g *Grid) Len() int {
	n := 0
	for _, cell := range g.cells {
		n += len(cell)
	}
	return n
}

// Reset empties the grid.
func (g *Grid) Reset() {
	g.cells = make(map[cellKey]map[ecs.EntityID]struct{})
}
