package wavemesh

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// DefaultSlantAmplification is the horizontal exaggeration applied to the
// line of sight when none is specified.
const DefaultSlantAmplification = 20.0

// A SlantEstimator computes the direction from a sounding's ground return
// toward the instrument that recorded it.
type SlantEstimator struct {
	// Amplification multiplies the horizontal part of the direction
	// before it is renormalized, making small off-nadir angles visible.
	// Values <= 0 are treated as 1.
	Amplification float64
}

// Estimate returns a unit vector in the local frame (X east, Y up, Z north)
// pointing from the lowest return of s toward the instrument.
//
// If the instrument is directly overhead, the result is (0, ±1, 0),
// following the sign of the vertical offset.
func (e *SlantEstimator) Estimate(s *Sounding) model3d.Coord3D {
	north, east := geoOffsetMeters(
		s.InstrumentLat-s.LowestLat,
		s.InstrumentLon-s.LowestLon,
		s.LowestLat,
	)
	up := s.InstrumentAlt - (s.LowestElevation + s.ReferenceElevation)

	horizontal := math.Hypot(east, north)
	if horizontal == 0 || math.IsNaN(horizontal) {
		if up < 0 {
			return model3d.Y(-1)
		}
		return model3d.Y(1)
	}

	amp := e.Amplification
	if amp <= 0 {
		amp = 1
	}
	dir := model3d.XYZ(east*amp, up, north*amp)
	return dir.Scale(1 / dir.Norm())
}
