package wavemesh

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// MetersPerDegree approximates the length of one degree of latitude.
const MetersPerDegree = 111000.0

// A Projector maps geodetic coordinates into a flat local frame anchored at
// a reference position.
//
// In the local frame, X points east, Y points up, and Z points north.
// Horizontal distances are multiplied by PositionScale and vertical
// distances by ElevationScale.
type Projector struct {
	RefLat       float64
	RefLon       float64
	RefElevation float64

	PositionScale  float64
	ElevationScale float64
}

// NewProjector creates a Projector with unit scales.
func NewProjector(refLat, refLon, refElevation float64) *Projector {
	return &Projector{
		RefLat:         refLat,
		RefLon:         refLon,
		RefElevation:   refElevation,
		PositionScale:  1,
		ElevationScale: 1,
	}
}

// Project converts a geodetic position to the local frame.
//
// Longitude offsets are shrunk by the cosine of the reference latitude to
// account for meridian convergence.
func (p *Projector) Project(lat, lon, elevation float64) model3d.Coord3D {
	north, east := geoOffsetMeters(lat-p.RefLat, lon-p.RefLon, p.RefLat)
	return model3d.XYZ(
		east*p.PositionScale,
		(elevation-p.RefElevation)*p.ElevationScale,
		north*p.PositionScale,
	)
}

// Unproject inverts Project.
//
// If a scale is zero, the corresponding offset cannot be recovered and the
// reference value is returned for it.
func (p *Projector) Unproject(c model3d.Coord3D) (lat, lon, elevation float64) {
	lat, lon, elevation = p.RefLat, p.RefLon, p.RefElevation
	if p.PositionScale != 0 {
		lat += c.Z / p.PositionScale / MetersPerDegree
		cosLat := math.Cos(p.RefLat * math.Pi / 180)
		if cosLat != 0 {
			lon += c.X / p.PositionScale / (MetersPerDegree * cosLat)
		}
	}
	if p.ElevationScale != 0 {
		elevation += c.Y / p.ElevationScale
	}
	return
}

// Project converts (lat, lon, elevation) to meters relative to the given
// reference position, using unit scales.
func Project(lat, lon, elevation, refLat, refLon, refElevation float64) model3d.Coord3D {
	return NewProjector(refLat, refLon, refElevation).Project(lat, lon, elevation)
}

func geoOffsetMeters(latDiff, lonDiff, atLat float64) (north, east float64) {
	north = latDiff * MetersPerDegree
	east = lonDiff * MetersPerDegree * math.Cos(atLat*math.Pi/180)
	return
}
