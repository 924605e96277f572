package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/gedi-mesh/wavemesh"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/model3d/render3d"
)

func main() {
	var configPath string
	var gridSize int
	var imageSize int
	var fps float64
	var frames int
	var noTubes bool
	flag.StringVar(&configPath, "config", "", "path to optional JSON config")
	flag.IntVar(&gridSize, "grid-size", 3, "grid size (used for rows and columns)")
	flag.IntVar(&imageSize, "image-size", 300, "size of each image in the grid")
	flag.Float64Var(&fps, "fps", 10.0, "FPS for GIF outputs")
	flag.IntVar(&frames, "frames", 20, "total number of frames for GIF outputs")
	flag.BoolVar(&noTubes, "no-tubes", false, "only render the terrain")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: render_scene [flags] <input.csv> <output.png>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	cfg := wavemesh.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = wavemesh.LoadConfig(configPath)
		essentials.Must(err)
	}

	log.Println("Loading soundings...")
	soundings, rowErrs, err := wavemesh.LoadSoundings(inputPath)
	essentials.Must(err)
	if len(rowErrs) > 0 {
		log.Printf(" - skipped %d malformed records", len(rowErrs))
	}

	log.Println("Building scene...")
	scene, err := wavemesh.BuildScene(soundings, cfg)
	essentials.Must(err)

	log.Println("Creating renderable object...")
	mesh := model3d.NewMesh()
	if scene.Terrain != nil {
		mesh.AddMesh(scene.Terrain.Model3D())
	}
	if !noTubes {
		for _, t := range scene.Tubes {
			mesh.AddMesh(t.WorldMesh().Model3D())
		}
	}
	if len(mesh.TriangleSlice()) == 0 {
		essentials.Die("Nothing to render: no terrain and no tubes.")
	}
	object := render3d.Objectify(model3d.MeshToCollider(mesh), nil)

	log.Println("Rendering...")
	ext := filepath.Ext(outputPath)
	if strings.ToLower(ext) == ".gif" {
		essentials.Must(
			render3d.SaveRotatingGIF(
				outputPath,
				object,
				model3d.Y(1),
				model3d.XZ(0.1, -1).Normalize(),
				imageSize,
				frames,
				fps,
				nil,
			),
		)
	} else {
		essentials.Must(
			render3d.SaveRandomGrid(outputPath, object, gridSize, gridSize, imageSize, nil),
		)
	}
}
