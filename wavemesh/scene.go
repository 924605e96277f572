package wavemesh

import (
	"log"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/floats"
)

// A Tube is the waveform mesh of one sounding, placed at Anchor.
// Mesh coordinates are relative to Anchor.
type Tube struct {
	Index  int
	Anchor model3d.Coord3D
	Mesh   *Mesh
}

// WorldMesh returns the tube mesh in scene coordinates.
func (t *Tube) WorldMesh() *Mesh {
	return t.Mesh.Translate(t.Anchor)
}

// Skipped records a sounding which produced no tube.
type Skipped struct {
	Index  int
	Reason error
}

// A Scene is the output of BuildScene.
type Scene struct {
	Reference Reference

	Tubes   []*Tube
	Skipped []Skipped

	// Ground holds the registry's vertices, which Terrain and Wireframe
	// are built from.
	Ground []TerrainVertex

	// Terrain and Wireframe are nil if the terrain stage failed, in which
	// case TerrainErr explains why.
	Terrain    *Mesh
	Wireframe  *Mesh
	TerrainErr error
}

// BuildScene creates the tubes and terrain for a batch of soundings.
//
// Every sounding passing validation and filtering gets a tube; the rest
// are listed in Scene.Skipped. The ground footprint of every valid
// sounding, whether or not it was filtered out, feeds the terrain.
// A terrain failure leaves the tubes intact and is reported through
// Scene.TerrainErr rather than the returned error, which is only non-nil
// for an invalid config.
func BuildScene(soundings []*Sounding, cfg *Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "build scene")
	}
	ref := sceneReference(soundings, cfg)
	scene := &Scene{Reference: ref}
	projector := cfg.Projector(ref)
	slant := &SlantEstimator{Amplification: cfg.HorizontalAmplification}
	builder := cfg.TubeBuilder()

	tubes := make([]*Tube, len(soundings))
	failures := make([]error, len(soundings))
	essentials.ConcurrentMap(0, len(soundings), func(i int) {
		tubes[i], failures[i] = buildTube(soundings[i], i, cfg, projector, slant, builder)
	})

	registry := NewGroundRegistry(cfg.RegistryCellSize)
	for i, s := range soundings {
		if tubes[i] != nil {
			scene.Tubes = append(scene.Tubes, tubes[i])
		} else {
			scene.Skipped = append(scene.Skipped, Skipped{Index: i, Reason: failures[i]})
			if cfg.Verbose {
				log.Printf("skipping sounding %d: %v", i, failures[i])
			}
		}
		if failures[i] == nil || isFilterError(failures[i]) {
			registry.Insert(TerrainVertex{
				Position:  projector.Project(s.Lat, s.Lon, s.Elevation),
				Lat:       s.Lat,
				Lon:       s.Lon,
				Elevation: s.Elevation,
			})
		}
	}
	if len(scene.Skipped) > 0 {
		log.Printf("skipped %d of %d soundings", len(scene.Skipped), len(soundings))
	}

	scene.Ground = registry.Vertices()
	scene.Terrain, scene.Wireframe, scene.TerrainErr = buildSceneTerrain(scene.Ground, cfg)
	if scene.TerrainErr != nil {
		log.Printf("warning: no terrain: %v", scene.TerrainErr)
	}
	return scene, nil
}

func sceneReference(soundings []*Sounding, cfg *Config) Reference {
	if cfg.Reference != nil {
		return *cfg.Reference
	} else if len(soundings) > 0 {
		s := soundings[0]
		return Reference{Lat: s.Lat, Lon: s.Lon, Elevation: s.Elevation}
	}
	return Reference{}
}

func buildTube(s *Sounding, index int, cfg *Config, projector *Projector,
	slant *SlantEstimator, builder *TubeBuilder) (*Tube, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if h := s.RH(cfg.RHField); h < cfg.MinHeight {
		return nil, errors.Wrapf(ErrBelowHeight, "%s is %f", cfg.RHField, h)
	}
	amps, fracs, err := ConditionWaveform(s.Amplitudes, s.HeightFractions,
		cfg.EnergyThreshold, cfg.TargetSum)
	if err != nil {
		return nil, err
	}
	floats.Scale(cfg.RadiusScale, amps)
	mesh, err := builder.Build(amps, fracs, slant.Estimate(s))
	if err != nil {
		return nil, err
	}
	return &Tube{
		Index:  index,
		Anchor: projector.Project(s.Lat, s.Lon, s.Elevation),
		Mesh:   mesh,
	}, nil
}

func isFilterError(err error) bool {
	switch errors.Cause(err) {
	case ErrBelowHeight, ErrBelowThreshold, ErrDegenerateTube:
		return true
	}
	return false
}

func buildSceneTerrain(ground []TerrainVertex, cfg *Config) (solid, wire *Mesh, err error) {
	bounds, err := cfg.Bounds()
	if err != nil {
		return nil, nil, err
	}
	tris, err := (&Triangulator{Bounds: bounds}).Triangulate(TerrainFootprints(ground))
	if err != nil {
		return nil, nil, errors.Wrap(err, "triangulate ground")
	}
	if len(tris) == 0 {
		return nil, nil, errors.New("triangulate ground: all ground points are collinear")
	}
	return BuildTerrain(ground, tris, cfg.GeoBounds())
}
