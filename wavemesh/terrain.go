package wavemesh

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

var ErrGeoBounds = errors.New("geographic bounds have zero extent")

// A TerrainVertex is the ground footprint of one sounding.
type TerrainVertex struct {
	Position  model3d.Coord3D
	Lat       float64
	Lon       float64
	Elevation float64
}

// GeoBounds is the geographic rectangle covered by a terrain texture.
type GeoBounds struct {
	West  float64
	East  float64
	South float64
	North float64
}

// UV maps a geographic position into texture coordinates.
func (g GeoBounds) UV(lat, lon float64) model2d.Coord {
	return model2d.XY(
		(lon-g.West)/(g.East-g.West),
		(lat-g.South)/(g.North-g.South),
	)
}

func (g GeoBounds) validate() error {
	if g.East == g.West || g.North == g.South {
		return errors.Wrapf(ErrGeoBounds, "%+v", g)
	}
	return nil
}

// TerrainFootprints projects terrain vertices onto the ground plane,
// returning (x, z) for every vertex.
func TerrainFootprints(vertices []TerrainVertex) []model2d.Coord {
	res := make([]model2d.Coord, len(vertices))
	for i, v := range vertices {
		res[i] = model2d.XY(v.Position.X, v.Position.Z)
	}
	return res
}

// BuildTerrain creates a solid mesh and a wireframe mesh from a
// triangulation of TerrainFootprints(vertices).
//
// Both meshes share the same vertex array, which contains each referenced
// vertex once, in order of first reference. Solid triangles are emitted
// as (v0, v2, v1) so that counter-clockwise footprint triangles face up.
// The wireframe has one line per distinct edge.
func BuildTerrain(vertices []TerrainVertex, triangles [][3]int,
	bounds GeoBounds) (solid, wireframe *Mesh, err error) {
	if err := bounds.validate(); err != nil {
		return nil, nil, err
	}

	remap := map[int]int{}
	var positions []model3d.Coord3D
	var uvs []model2d.Coord
	solidTris := make([][3]int, 0, len(triangles))
	for ti, t := range triangles {
		var local [3]int
		for i, idx := range t {
			if idx < 0 || idx >= len(vertices) {
				return nil, nil, errors.Errorf("triangle %d: vertex index %d out of range", ti, idx)
			}
			newIdx, ok := remap[idx]
			if !ok {
				newIdx = len(positions)
				remap[idx] = newIdx
				v := vertices[idx]
				positions = append(positions, v.Position)
				uvs = append(uvs, bounds.UV(v.Lat, v.Lon))
			}
			local[i] = newIdx
		}
		solidTris = append(solidTris, [3]int{local[0], local[2], local[1]})
	}

	seenEdges := map[[2]int]struct{}{}
	var lines [][2]int
	for _, t := range solidTris {
		for i := 0; i < 3; i++ {
			key := edgeKey(t[i], t[(i+1)%3])
			if _, ok := seenEdges[key]; !ok {
				seenEdges[key] = struct{}{}
				lines = append(lines, key)
			}
		}
	}

	solid = &Mesh{
		Vertices:  positions,
		Triangles: solidTris,
		UVs:       uvs,
	}
	wireframe = &Mesh{
		Vertices: append([]model3d.Coord3D{}, positions...),
		Lines:    lines,
	}
	return solid, wireframe, nil
}
