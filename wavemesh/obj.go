package wavemesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteOBJ encodes m as a Wavefront OBJ file.
//
// Triangles become "f" records and lines become "l" records. If m has one
// UV per vertex, texture coordinates are written as well.
func WriteOBJ(w io.Writer, m *Mesh) error {
	if err := writeOBJ(w, m); err != nil {
		return errors.Wrap(err, "write OBJ")
	}
	return nil
}

func writeOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	hasUV := len(m.UVs) > 0 && len(m.UVs) == len(m.Vertices)
	if hasUV {
		for _, uv := range m.UVs {
			if _, err := fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y); err != nil {
				return err
			}
		}
	}
	for _, t := range m.Triangles {
		var err error
		if hasUV {
			_, err = fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
				t[0]+1, t[0]+1, t[1]+1, t[1]+1, t[2]+1, t[2]+1)
		} else {
			_, err = fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
		}
		if err != nil {
			return err
		}
	}
	for _, l := range m.Lines {
		if _, err := fmt.Fprintf(bw, "l %d %d\n", l[0]+1, l[1]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
