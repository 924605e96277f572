package wavemesh

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed vertex buffer independent of any rendering API.
//
// Triangle meshes fill Triangles, line meshes fill Lines. UVs and Heights
// are either empty or have one entry per vertex.
type Mesh struct {
	Vertices  []model3d.Coord3D
	Triangles [][3]int
	Lines     [][2]int
	UVs       []model2d.Coord

	// Heights is a secondary per-vertex channel, used by tubes to carry
	// the physical column height.
	Heights []float64
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int {
	return len(m.Vertices)
}

// Translate returns a copy of m with every vertex moved by offset.
func (m *Mesh) Translate(offset model3d.Coord3D) *Mesh {
	res := &Mesh{
		Vertices:  make([]model3d.Coord3D, len(m.Vertices)),
		Triangles: append([][3]int{}, m.Triangles...),
		Lines:     append([][2]int{}, m.Lines...),
		UVs:       append([]model2d.Coord{}, m.UVs...),
		Heights:   append([]float64{}, m.Heights...),
	}
	for i, v := range m.Vertices {
		res.Vertices[i] = v.Add(offset)
	}
	return res
}

// Triangle returns the coordinates of the i-th triangle.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	t := m.Triangles[i]
	return &model3d.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
}

// Model3D converts the triangles of m into a model3d.Mesh, for example to
// export STL files. Lines are ignored.
func (m *Mesh) Model3D() *model3d.Mesh {
	res := model3d.NewMesh()
	for i := range m.Triangles {
		res.Add(m.Triangle(i))
	}
	return res
}

// Segments returns the coordinates of every line in m.
func (m *Mesh) Segments() []*model3d.Segment {
	res := make([]*model3d.Segment, len(m.Lines))
	for i, l := range m.Lines {
		res[i] = &model3d.Segment{m.Vertices[l[0]], m.Vertices[l[1]]}
	}
	return res
}

// MergeMeshes concatenates meshes into one mesh, offsetting indices.
//
// UVs and Heights are only kept if every input mesh provides them.
func MergeMeshes(meshes ...*Mesh) *Mesh {
	res := &Mesh{}
	keepUVs, keepHeights := true, true
	for _, m := range meshes {
		keepUVs = keepUVs && len(m.UVs) == len(m.Vertices)
		keepHeights = keepHeights && len(m.Heights) == len(m.Vertices)
	}
	for _, m := range meshes {
		offset := len(res.Vertices)
		res.Vertices = append(res.Vertices, m.Vertices...)
		for _, t := range m.Triangles {
			res.Triangles = append(res.Triangles, [3]int{t[0] + offset, t[1] + offset, t[2] + offset})
		}
		for _, l := range m.Lines {
			res.Lines = append(res.Lines, [2]int{l[0] + offset, l[1] + offset})
		}
		if keepUVs {
			res.UVs = append(res.UVs, m.UVs...)
		}
		if keepHeights {
			res.Heights = append(res.Heights, m.Heights...)
		}
	}
	return res
}
