package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/gedi-mesh/wavemesh"
)

func main() {
	var configPath string
	var ringResolution int
	var cellSize float64
	var verbose bool
	var gridCell float64
	var seed int64
	flag.StringVar(&configPath, "config", "", "path to optional JSON config")
	flag.IntVar(&ringResolution, "ring-resolution", 0, "override vertices per tube ring")
	flag.Float64Var(&cellSize, "cell-size", -1, "override ground registry cell size")
	flag.BoolVar(&verbose, "verbose", false, "log every skipped sounding")
	flag.Float64Var(&gridCell, "grid-cell", 0,
		"if positive, keep one random sounding per grid cell of this size (degrees)")
	flag.Int64Var(&seed, "seed", 0, "random seed for -grid-cell")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: soundings_to_meshes [flags] <input.csv> <output_dir>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	cfg := wavemesh.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = wavemesh.LoadConfig(configPath)
		essentials.Must(err)
	}
	if ringResolution != 0 {
		cfg.RingResolution = ringResolution
	}
	if cellSize >= 0 {
		cfg.RegistryCellSize = cellSize
	}
	cfg.Verbose = cfg.Verbose || verbose

	log.Println("Loading soundings...")
	soundings := loadSoundings(inputPath)
	log.Printf(" => loaded %d soundings", len(soundings))
	if gridCell > 0 && len(soundings) > 0 {
		first := soundings[0]
		ref := wavemesh.Reference{Lat: first.Lat, Lon: first.Lon, Elevation: first.Elevation}
		if cfg.Reference != nil {
			ref = *cfg.Reference
		}
		cfg.Reference = &ref
		var err error
		soundings, err = wavemesh.SampleGrid(soundings, ref, gridCell, wavemesh.SampleRandom,
			rand.New(rand.NewSource(seed)))
		essentials.Must(err)
		log.Printf(" => sampled %d soundings", len(soundings))
	}

	log.Println("Building scene...")
	scene, err := wavemesh.BuildScene(soundings, cfg)
	essentials.Must(err)
	log.Printf(" => %d tubes, %d ground points", len(scene.Tubes), len(scene.Ground))

	log.Println("Writing outputs...")
	essentials.Must(os.MkdirAll(outputPath, 0755))
	manifest := wavemesh.NewManifest(scene, len(soundings))

	tubes := make([]*wavemesh.Mesh, len(scene.Tubes))
	for i, t := range scene.Tubes {
		tubes[i] = t.WorldMesh()
	}
	writeOBJ(outputPath, "tubes.obj", wavemesh.MergeMeshes(tubes...), manifest)

	if scene.Terrain != nil {
		writeOBJ(outputPath, "terrain.obj", scene.Terrain, manifest)
		writeOBJ(outputPath, "wireframe.obj", scene.Wireframe, manifest)
		stlPath := filepath.Join(outputPath, "terrain.stl")
		essentials.Must(scene.Terrain.Model3D().SaveGroupedSTL(stlPath))
		manifest.Files["terrain_stl"] = "terrain.stl"
	}

	log.Println("Saving manifest...")
	essentials.Must(wavemesh.Save(
		filepath.Join(outputPath, "manifest.json"),
		manifest,
		wavemesh.WriteManifest,
	))
}

func loadSoundings(path string) []*wavemesh.Sounding {
	soundings, rowErrs, err := wavemesh.LoadSoundings(path)
	essentials.Must(err)
	for _, err := range rowErrs {
		log.Printf("skipping record: %v", err)
	}
	return soundings
}

func writeOBJ(dir, name string, m *wavemesh.Mesh, manifest *wavemesh.Manifest) {
	essentials.Must(wavemesh.Save(filepath.Join(dir, name), m, wavemesh.WriteOBJ))
	manifest.Files[name[:len(name)-len(filepath.Ext(name))]] = name
}
