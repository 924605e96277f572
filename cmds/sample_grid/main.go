package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/gedi-mesh/wavemesh"
)

func main() {
	var cellSize float64
	var mostPopulated bool
	var seed int64
	var minHeight float64
	var rhField string
	flag.Float64Var(&cellSize, "cell-size", 1, "grid cell size in degrees")
	flag.BoolVar(&mostPopulated, "most-populated", false,
		"keep every sounding of the fullest cell instead of one per cell")
	flag.Int64Var(&seed, "seed", 0, "random seed for per-cell selection")
	flag.Float64Var(&minHeight, "min-height", 5, "minimum relative height in meters")
	flag.StringVar(&rhField, "rh-field", "rh98", "relative height field (rh2, rh50, rh98)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sample_grid [flags] <input.csv>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	field, err := wavemesh.ParseRHField(rhField)
	essentials.Must(err)

	log.Println("Loading soundings...")
	soundings, _, err := wavemesh.LoadSoundings(args[0])
	essentials.Must(err)
	if len(soundings) == 0 {
		essentials.Die("no soundings in input")
	}

	first := soundings[0]
	ref := wavemesh.Reference{Lat: first.Lat, Lon: first.Lon, Elevation: first.Elevation}
	cells, err := wavemesh.GroupByCell(soundings, ref, cellSize)
	essentials.Must(err)
	fmt.Println("Number of cells:", len(cells))

	mode := wavemesh.SampleRandom
	if mostPopulated {
		mode = wavemesh.SampleMostPopulated
	}
	selected, err := wavemesh.SampleGrid(soundings, ref, cellSize, mode,
		rand.New(rand.NewSource(seed)))
	essentials.Must(err)
	var tallEnough int
	for _, s := range selected {
		if s.RH(field) >= minHeight {
			tallEnough++
		}
	}
	fmt.Println("Selected soundings:", len(selected))
	fmt.Printf("Selected with %s >= %.2f: %d\n", field, minHeight, tallEnough)
}
