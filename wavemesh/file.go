package wavemesh

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load opens path and decodes it with f.
func Load[T any](path string, f func(io.Reader) (T, error)) (T, error) {
	r, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "load")
	}
	defer r.Close()
	return f(r)
}

// Save creates path and encodes obj into it with f.
func Save[T any](path string, obj T, f func(io.Writer, T) error) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	if err := f(w, obj); err != nil {
		w.Close()
		return err
	}
	return errors.Wrap(w.Close(), "save")
}
