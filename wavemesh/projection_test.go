package wavemesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestProjectReference(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	for i := 0; i < 100; i++ {
		lat := r.Float64()*170 - 85
		lon := r.Float64()*360 - 180
		elev := r.NormFloat64() * 1000
		if p := Project(lat, lon, elev, lat, lon, elev); p != model3d.Origin {
			t.Fatalf("expected origin for reference point but got %v", p)
		}
		proj := &Projector{
			RefLat:         lat,
			RefLon:         lon,
			RefElevation:   elev,
			PositionScale:  r.Float64(),
			ElevationScale: r.Float64(),
		}
		if p := proj.Project(lat, lon, elev); p != model3d.Origin {
			t.Fatalf("expected origin for reference point but got %v", p)
		}
	}
}

func TestProjectAxes(t *testing.T) {
	p := &Projector{
		RefLat:         60,
		RefLon:         10,
		RefElevation:   100,
		PositionScale:  0.5,
		ElevationScale: 2,
	}

	north := p.Project(61, 10, 100)
	if math.Abs(north.Z-MetersPerDegree*0.5) > 1e-6 || north.X != 0 || north.Y != 0 {
		t.Errorf("unexpected north offset: %v", north)
	}

	// cos(60 degrees) = 0.5
	east := p.Project(60, 11, 100)
	if math.Abs(east.X-MetersPerDegree*0.25) > 1e-6 || east.Z != 0 || east.Y != 0 {
		t.Errorf("unexpected east offset: %v", east)
	}

	up := p.Project(60, 10, 110)
	if up != model3d.Y(20) {
		t.Errorf("unexpected vertical offset: %v", up)
	}
}

func TestProjectorUnproject(t *testing.T) {
	p := &Projector{
		RefLat:         -46.55,
		RefLon:         -71.45,
		RefElevation:   350,
		PositionScale:  0.01,
		ElevationScale: 0.02,
	}
	lat, lon, elev := p.Unproject(p.Project(-46.52, -71.48, 412.5))
	if math.Abs(lat+46.52) > 1e-9 || math.Abs(lon+71.48) > 1e-9 || math.Abs(elev-412.5) > 1e-9 {
		t.Errorf("unexpected round trip: %f %f %f", lat, lon, elev)
	}

	flat := &Projector{RefLat: 1, RefLon: 2, RefElevation: 3}
	lat, lon, elev = flat.Unproject(model3d.XYZ(5, 6, 7))
	if lat != 1 || lon != 2 || elev != 3 {
		t.Errorf("zero scales should give the reference but got %f %f %f", lat, lon, elev)
	}
}
