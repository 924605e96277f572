package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/gedi-mesh/wavemesh"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	var index int
	var threshold float64
	var targetSum float64
	var raw bool
	var size float64
	flag.IntVar(&index, "index", 0, "index of the sounding to plot")
	flag.Float64Var(&threshold, "energy-threshold", 5, "drop leading samples below this energy")
	flag.Float64Var(&targetSum, "target-sum", 25, "normalize the waveform to this sum")
	flag.BoolVar(&raw, "raw", false, "plot the waveform without conditioning")
	flag.Float64Var(&size, "size", 4, "plot size in inches")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: plot_waveform [flags] <input.csv> <output.png>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	log.Println("Loading soundings...")
	soundings, _, err := wavemesh.LoadSoundings(inputPath)
	essentials.Must(err)
	if index < 0 || index >= len(soundings) {
		essentials.Die(fmt.Sprintf("index %d out of range (%d soundings)", index, len(soundings)))
	}
	s := soundings[index]
	essentials.Must(s.Validate())

	amps, fracs := s.Amplitudes, s.HeightFractions
	if !raw {
		amps, fracs, err = wavemesh.ConditionWaveform(amps, fracs, threshold, targetSum)
		essentials.Must(err)
	}

	log.Println("Plotting...")
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sounding %d (%.5f, %.5f)", index, s.Lat, s.Lon)
	p.X.Label.Text = "amplitude"
	p.Y.Label.Text = "height (fraction of column)"

	points := make(plotter.XYs, len(amps))
	for i, a := range amps {
		points[i].X = a
		points[i].Y = 1 - fracs[i]
	}
	line, err := plotter.NewLine(points)
	essentials.Must(err)
	p.Add(line, plotter.NewGrid())

	essentials.Must(p.Save(vg.Length(size)*vg.Inch, vg.Length(size)*vg.Inch, outputPath))
}
