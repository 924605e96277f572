package wavemesh

import "math"

// A GroundRegistry collects the ground footprints of soundings, keeping at
// most one vertex per cell of a horizontal grid.
//
// When two vertices fall into the same cell, the later insertion wins but
// the cell keeps the position in Vertices() of its first insertion.
//
// A GroundRegistry is not safe for concurrent use.
type GroundRegistry struct {
	cellSize float64
	cells    map[[2]float64]int
	vertices []TerrainVertex
}

// NewGroundRegistry creates a registry with square cells of the given size
// in the local X/Z plane. If cellSize is <= 0, vertices are keyed by their
// exact horizontal coordinates.
func NewGroundRegistry(cellSize float64) *GroundRegistry {
	return &GroundRegistry{
		cellSize: cellSize,
		cells:    map[[2]float64]int{},
	}
}

// Insert adds v, replacing any vertex already in its cell.
// It returns true if the cell was previously empty.
func (g *GroundRegistry) Insert(v TerrainVertex) bool {
	key := g.key(v)
	if idx, ok := g.cells[key]; ok {
		g.vertices[idx] = v
		return false
	}
	g.cells[key] = len(g.vertices)
	g.vertices = append(g.vertices, v)
	return true
}

// Len returns the number of occupied cells.
func (g *GroundRegistry) Len() int {
	return len(g.vertices)
}

// Vertices returns a copy of the current vertex of every occupied cell.
func (g *GroundRegistry) Vertices() []TerrainVertex {
	return append([]TerrainVertex{}, g.vertices...)
}

func (g *GroundRegistry) key(v TerrainVertex) [2]float64 {
	x, z := v.Position.X, v.Position.Z
	if g.cellSize <= 0 {
		return [2]float64{x, z}
	}
	return [2]float64{math.Floor(x / g.cellSize), math.Floor(z / g.cellSize)}
}
