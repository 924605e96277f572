package wavemesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func TestBuildTerrainSquare(t *testing.T) {
	bounds := GeoBounds{West: 0, East: 2, South: 0, North: 4}
	vertices := []TerrainVertex{
		{Position: model3d.XYZ(0, 0.5, 0), Lat: 0, Lon: 0},
		{Position: model3d.XYZ(1, 0.2, 0), Lat: 0, Lon: 2},
		{Position: model3d.XYZ(1, 0.1, 1), Lat: 4, Lon: 2},
		{Position: model3d.XYZ(0, 0.3, 1), Lat: 4, Lon: 0},
		{Position: model3d.XYZ(9, 9, 9), Lat: 2, Lon: 1},
	}
	tris, err := Triangulate(TerrainFootprints(vertices[:4]))
	if err != nil {
		t.Fatal(err)
	}
	solid, wire, err := BuildTerrain(vertices, tris, bounds)
	if err != nil {
		t.Fatal(err)
	}

	if len(solid.Triangles) != 2 {
		t.Fatalf("expected 2 triangles but got %d", len(solid.Triangles))
	}
	if solid.NumVertices() != 4 || wire.NumVertices() != 4 {
		t.Fatalf("expected 4 vertices but got %d and %d", solid.NumVertices(), wire.NumVertices())
	}
	for i, v := range solid.Vertices {
		if wire.Vertices[i] != v {
			t.Errorf("vertex %d differs between solid and wireframe", i)
		}
	}
	if len(wire.Lines) != 5 {
		t.Errorf("expected 5 unique edges but got %d", len(wire.Lines))
	}
	if len(wire.Triangles) != 0 || len(solid.Lines) != 0 {
		t.Error("solid and wireframe should not share primitives")
	}
	for i := range solid.Triangles {
		if n := solid.Triangle(i).Normal(); n.Y <= 0 {
			t.Errorf("triangle %d faces down: %v", i, n)
		}
	}

	for i, v := range solid.Vertices {
		var source *TerrainVertex
		for j := range vertices {
			if vertices[j].Position == v {
				source = &vertices[j]
			}
		}
		if source == nil {
			t.Fatalf("vertex %d does not come from the input", i)
		}
		expected := model2d.XY(source.Lon/2, source.Lat/4)
		if solid.UVs[i] != expected {
			t.Errorf("vertex %d: expected UV %v but got %v", i, expected, solid.UVs[i])
		}
	}
}

func TestBuildTerrainRandom(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	vertices := make([]TerrainVertex, 200)
	for i := range vertices {
		vertices[i] = TerrainVertex{
			Position: model3d.XYZ(r.Float64()*10, r.NormFloat64(), r.Float64()*10),
			Lat:      r.Float64(),
			Lon:      r.Float64(),
		}
	}
	tris, err := Triangulate(TerrainFootprints(vertices))
	if err != nil {
		t.Fatal(err)
	}
	solid, wire, err := BuildTerrain(vertices, tris, GeoBounds{East: 1, North: 1})
	if err != nil {
		t.Fatal(err)
	}

	edges := map[[2]int]bool{}
	for i, tri := range solid.Triangles {
		if n := solid.Triangle(i).Normal(); n.Y <= 0 {
			t.Fatalf("triangle %d faces down", i)
		}
		for j := 0; j < 3; j++ {
			edges[edgeKey(tri[j], tri[(j+1)%3])] = true
		}
	}
	if len(wire.Lines) != len(edges) {
		t.Fatalf("expected %d lines but got %d", len(edges), len(wire.Lines))
	}
	for _, l := range wire.Lines {
		if !edges[edgeKey(l[0], l[1])] {
			t.Fatalf("line %v is not a triangle edge", l)
		}
	}
	for _, uv := range solid.UVs {
		if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 || math.IsNaN(uv.X) {
			t.Fatalf("UV out of range: %v", uv)
		}
	}
}

func TestBuildTerrainErrors(t *testing.T) {
	vertices := []TerrainVertex{{}, {Position: model3d.X(1)}, {Position: model3d.Z(1)}}
	tris := [][3]int{{0, 1, 2}}

	_, _, err := BuildTerrain(vertices, tris, GeoBounds{West: 1, East: 1, South: 0, North: 1})
	if errors.Cause(err) != ErrGeoBounds {
		t.Errorf("expected ErrGeoBounds but got %v", err)
	}
	_, _, err = BuildTerrain(vertices, [][3]int{{0, 1, 3}}, GeoBounds{East: 1, North: 1})
	if err == nil {
		t.Error("expected error for out-of-range index")
	}
	solid, wire, err := BuildTerrain(vertices, nil, GeoBounds{East: 1, North: 1})
	if err != nil {
		t.Fatal(err)
	}
	if solid.NumVertices() != 0 || len(wire.Lines) != 0 {
		t.Error("expected empty meshes for empty triangulation")
	}
}

func TestGroundRegistry(t *testing.T) {
	reg := NewGroundRegistry(1)
	a := TerrainVertex{Position: model3d.XYZ(0.2, 1, 0.3), Lat: 1}
	b := TerrainVertex{Position: model3d.XYZ(2.5, 1, 0.3), Lat: 2}
	c := TerrainVertex{Position: model3d.XYZ(0.9, 5, 0.9), Lat: 3}

	if !reg.Insert(a) || !reg.Insert(b) {
		t.Fatal("expected new cells")
	}
	if reg.Insert(c) {
		t.Fatal("expected c to replace a")
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 cells but got %d", reg.Len())
	}
	vs := reg.Vertices()
	if vs[0] != c || vs[1] != b {
		t.Errorf("unexpected vertices: %v", vs)
	}
	vs[0] = a
	if reg.Vertices()[0] != c {
		t.Error("Vertices() should return a copy")
	}

	exact := NewGroundRegistry(0)
	exact.Insert(a)
	exact.Insert(c)
	exact.Insert(TerrainVertex{Position: model3d.XYZ(0.2, 7, 0.3)})
	if exact.Len() != 2 {
		t.Errorf("expected 2 exact cells but got %d", exact.Len())
	}
}
