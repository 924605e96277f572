package wavemesh

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
)

// A Manifest describes the files written for one scene.
type Manifest struct {
	SceneID   string    `json:"scene_id"`
	Reference Reference `json:"reference"`

	NumSoundings int `json:"num_soundings"`
	NumTubes     int `json:"num_tubes"`
	NumSkipped   int `json:"num_skipped"`
	NumGround    int `json:"num_ground_points"`

	TerrainTriangles int    `json:"terrain_triangles"`
	WireframeLines   int    `json:"wireframe_lines"`
	TerrainError     string `json:"terrain_error,omitempty"`

	Files map[string]string `json:"files"`
}

// NewManifest summarizes a scene under a fresh random scene ID.
func NewManifest(s *Scene, numSoundings int) *Manifest {
	m := &Manifest{
		SceneID:      uuid.NewString(),
		Reference:    s.Reference,
		NumSoundings: numSoundings,
		NumTubes:     len(s.Tubes),
		NumSkipped:   len(s.Skipped),
		NumGround:    len(s.Ground),
		Files:        map[string]string{},
	}
	if s.Terrain != nil {
		m.TerrainTriangles = len(s.Terrain.Triangles)
	}
	if s.Wireframe != nil {
		m.WireframeLines = len(s.Wireframe.Lines)
	}
	if s.TerrainErr != nil {
		m.TerrainError = s.TerrainErr.Error()
	}
	return m
}

// WriteManifest encodes m as indented JSON.
func WriteManifest(w io.Writer, m *Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
