package wavemesh

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

const (
	DefaultRingResolution = 12
	DefaultGroundFraction = 0.1172
	DefaultPhysicalHeight = 76.8
)

var (
	ErrDegenerateTube = errors.New("waveform too short to form a tube")
	ErrRingResolution = errors.New("ring resolution must be at least 3")
)

// A TubeBuilder creates waveform tubes: closed cylinders whose radius at
// each height follows the waveform amplitude at that height.
type TubeBuilder struct {
	// RingResolution is the number of vertices around each ring.
	RingResolution int

	// GroundFraction places the ground plane (y = 0) at this fraction of
	// the column height, measured from the bottom.
	GroundFraction float64

	// TotalHeight is the column height in output units.
	TotalHeight float64

	// PhysicalHeight is stored in Mesh.Heights for every vertex.
	// If zero, TotalHeight is stored instead.
	PhysicalHeight float64

	// RadiusCap is the maximum radius of a ring.
	// If it is <= 0, radii are not bounded above.
	RadiusCap float64
}

// NewTubeBuilder creates a TubeBuilder with the default ring resolution,
// ground fraction, and column height.
func NewTubeBuilder() *TubeBuilder {
	return &TubeBuilder{
		RingResolution: DefaultRingResolution,
		GroundFraction: DefaultGroundFraction,
		TotalHeight:    DefaultPhysicalHeight,
		PhysicalHeight: DefaultPhysicalHeight,
	}
}

// Build creates the tube for a waveform.
//
// The tube has one ring per sample plus a top cap ring which repeats the
// last sample's radius at height fraction 1. Fraction 0 is the top of the
// column. Every ring is shifted horizontally by slant scaled by the ring's
// height, so the tube leans along the line of sight.
//
// The result has (N+1)*R vertices and N*2*R + 2*(R-2) triangles for N
// samples and ring resolution R, with all faces oriented outward.
func (t *TubeBuilder) Build(amplitudes, fractions []float64, slant model3d.Coord3D) (*Mesh, error) {
	if len(amplitudes) != len(fractions) {
		return nil, errors.Wrapf(ErrProfileMismatch, "%d amplitudes, %d fractions",
			len(amplitudes), len(fractions))
	}
	n := len(amplitudes)
	if n < 2 {
		return nil, errors.Wrapf(ErrDegenerateTube, "%d samples", n)
	}
	res := t.RingResolution
	if res < 3 {
		return nil, errors.Wrapf(ErrRingResolution, "got %d", res)
	}

	physHeight := t.PhysicalHeight
	if physHeight == 0 {
		physHeight = t.TotalHeight
	}

	numVerts := (n + 1) * res
	mesh := &Mesh{
		Vertices:  make([]model3d.Coord3D, 0, numVerts),
		Triangles: make([][3]int, 0, n*2*res+2*(res-2)),
		UVs:       make([]model2d.Coord, 0, numVerts),
		Heights:   make([]float64, 0, numVerts),
	}

	for i := 0; i <= n; i++ {
		ratio := 1.0
		radius := amplitudes[n-1]
		if i < n {
			ratio = fractions[i]
			radius = amplitudes[i]
		}
		radius = math.Max(0, radius)
		if t.RadiusCap > 0 {
			radius = math.Min(radius, t.RadiusCap)
		}
		y := (1 - ratio - t.GroundFraction) * t.TotalHeight
		offset := slant.Scale(y)
		for j := 0; j < res; j++ {
			theta := 2 * math.Pi * float64(j) / float64(res)
			mesh.Vertices = append(mesh.Vertices, model3d.XYZ(
				radius*math.Cos(theta)+offset.X,
				y,
				radius*math.Sin(theta)+offset.Z,
			))
			mesh.UVs = append(mesh.UVs, model2d.XY(float64(j)/float64(res), ratio))
			mesh.Heights = append(mesh.Heights, physHeight)
		}
	}

	// Rings run from the top of the column downward, so with increasing
	// angle these faces point away from the axis.
	for i := 0; i < n; i++ {
		upper := i * res
		lower := upper + res
		for j := 0; j < res; j++ {
			next := (j + 1) % res
			mesh.Triangles = append(
				mesh.Triangles,
				[3]int{upper + j, upper + next, lower + j},
				[3]int{upper + next, lower + next, lower + j},
			)
		}
	}

	first := 0
	last := n * res
	for j := 1; j < res-1; j++ {
		mesh.Triangles = append(mesh.Triangles, [3]int{first, first + j + 1, first + j})
	}
	for j := 1; j < res-1; j++ {
		mesh.Triangles = append(mesh.Triangles, [3]int{last, last + j, last + j + 1})
	}

	return mesh, nil
}
