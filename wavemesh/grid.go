package wavemesh

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrCellSize = errors.New("grid cell size must be positive and finite")

// A SampleMode decides which soundings SampleGrid keeps.
type SampleMode int

const (
	// SampleRandom keeps one random sounding from every cell.
	SampleRandom SampleMode = iota

	// SampleMostPopulated keeps every sounding of the fullest cell.
	SampleMostPopulated
)

// A GridCell identifies a cell of a longitude/latitude grid.
type GridCell struct {
	Col int
	Row int
}

// GroupByCell buckets soundings into square cells of cellSize degrees,
// with the cell at (0, 0) starting at ref.
func GroupByCell(soundings []*Sounding, ref Reference,
	cellSize float64) (map[GridCell][]*Sounding, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		return nil, errors.Wrapf(ErrCellSize, "got %f", cellSize)
	}
	res := map[GridCell][]*Sounding{}
	for _, s := range soundings {
		cell := GridCell{
			Col: int(math.Floor((s.Lon - ref.Lon) / cellSize)),
			Row: int(math.Floor((s.Lat - ref.Lat) / cellSize)),
		}
		res[cell] = append(res[cell], s)
	}
	return res, nil
}

// SampleGrid thins out soundings by grouping them into grid cells.
//
// Cells are visited in row-major order so that a seeded rng gives
// reproducible results. Ties for the most populated cell go to the first
// cell in that order. If rng is nil, a source seeded with 0 is used.
func SampleGrid(soundings []*Sounding, ref Reference, cellSize float64, mode SampleMode,
	rng *rand.Rand) ([]*Sounding, error) {
	cells, err := GroupByCell(soundings, ref, cellSize)
	if err != nil {
		return nil, err
	}
	if len(soundings) == 0 {
		return nil, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	keys := maps.Keys(cells)
	slices.SortFunc(keys, func(a, b GridCell) bool {
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	if mode == SampleMostPopulated {
		best := keys[0]
		for _, k := range keys[1:] {
			if len(cells[k]) > len(cells[best]) {
				best = k
			}
		}
		return append([]*Sounding{}, cells[best]...), nil
	}

	res := make([]*Sounding, 0, len(keys))
	for _, k := range keys {
		ss := cells[k]
		res = append(res, ss[rng.Intn(len(ss))])
	}
	return res, nil
}
