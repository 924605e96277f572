package wavemesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestGroupByCell(t *testing.T) {
	soundings := []*Sounding{
		{Lat: 10.2, Lon: 20.1},
		{Lat: 10.9, Lon: 20.9},
		{Lat: 9.5, Lon: 20.5},
		{Lat: 11.1, Lon: 22.3},
	}
	cells, err := GroupByCell(soundings, Reference{Lat: 10, Lon: 20}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells but got %d", len(cells))
	}
	if len(cells[GridCell{0, 0}]) != 2 {
		t.Errorf("expected 2 soundings in the origin cell")
	}
	if len(cells[GridCell{Col: 0, Row: -1}]) != 1 {
		t.Errorf("expected a sounding below the origin cell")
	}
	if len(cells[GridCell{Col: 2, Row: 1}]) != 1 {
		t.Errorf("expected a sounding in cell (2, 1)")
	}
}

func TestSampleGrid(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	var soundings []*Sounding
	for i := 0; i < 500; i++ {
		soundings = append(soundings, &Sounding{Lat: r.Float64() * 3, Lon: r.Float64() * 4})
	}
	ref := Reference{}

	selected, err := SampleGrid(soundings, ref, 1, SampleRandom, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(selected) != 12 {
		t.Fatalf("expected one sounding for each of 12 cells but got %d", len(selected))
	}
	seen := map[GridCell]bool{}
	for _, s := range selected {
		cell := GridCell{Col: int(s.Lon), Row: int(s.Lat)}
		if seen[cell] {
			t.Fatalf("cell %v selected twice", cell)
		}
		seen[cell] = true
	}

	again, err := SampleGrid(soundings, ref, 1, SampleRandom, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range selected {
		if again[i] != s {
			t.Fatal("selection is not reproducible")
		}
	}

	cells, err := GroupByCell(soundings, ref, 1)
	if err != nil {
		t.Fatal(err)
	}
	var most int
	for _, ss := range cells {
		if len(ss) > most {
			most = len(ss)
		}
	}
	populated, err := SampleGrid(soundings, ref, 1, SampleMostPopulated, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(populated) != most {
		t.Errorf("expected %d soundings but got %d", most, len(populated))
	}

	if res, err := SampleGrid(nil, ref, 1, SampleRandom, r); res != nil || err != nil {
		t.Errorf("expected nil for no soundings but got %v, %v", res, err)
	}

	defaultRNG, err := SampleGrid(soundings, ref, 1, SampleRandom, nil)
	if err != nil {
		t.Fatal(err)
	}
	seeded, err := SampleGrid(soundings, ref, 1, SampleRandom, rand.New(rand.NewSource(0)))
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range defaultRNG {
		if seeded[i] != s {
			t.Fatal("nil rng should behave like a zero seed")
		}
	}
}

func TestGroupByCellBadSize(t *testing.T) {
	soundings := []*Sounding{{Lat: 1, Lon: 2}}
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := GroupByCell(soundings, Reference{}, size); errors.Cause(err) != ErrCellSize {
			t.Errorf("cell size %f: expected ErrCellSize but got %v", size, err)
		}
		if _, err := SampleGrid(soundings, Reference{}, size, SampleRandom, nil); errors.Cause(err) != ErrCellSize {
			t.Errorf("cell size %f: expected ErrCellSize from SampleGrid but got %v", size, err)
		}
	}
}
