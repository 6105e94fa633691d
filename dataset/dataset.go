package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a dataset would contain no points.
	ErrEmpty = errors.New("dataset is empty")
	// ErrInvalidDim is returned when dim is not positive.
	ErrInvalidDim = errors.New("dimension must be positive")
)

// ErrRaggedData indicates flattened data whose length is not a multiple of
// the declared dimension, or a vector whose length differs from the first.
type ErrRaggedData struct {
	Index    int // offending row, -1 for flattened data
	Expected int
	Actual   int
}

func (e *ErrRaggedData) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("data length %d is not a multiple of dimension %d", e.Actual, e.Expected)
	}
	return fmt.Sprintf("row %d has %d values, expected %d", e.Index, e.Actual, e.Expected)
}

// Dataset is an immutable ordered set of D-dimensional points stored as a
// flattened row-major float64 slice. It references caller-provided storage;
// callers must not mutate the backing data while the dataset is in use.
type Dataset struct {
	data []float64
	n    int
	dim  int

	// unmap releases the backing storage for memory-mapped datasets.
	unmap func() error
}

// New wraps flattened row-major data (point i occupies data[i*dim:(i+1)*dim]).
// The slice is referenced, not copied.
func New(data []float64, dim int) (*Dataset, error) {
	if dim < 1 {
		return nil, ErrInvalidDim
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data)%dim != 0 {
		return nil, &ErrRaggedData{Index: -1, Expected: dim, Actual: len(data)}
	}
	return &Dataset{data: data, n: len(data) / dim, dim: dim}, nil
}

// FromVectors flattens a slice of equal-length vectors into a Dataset.
// The vectors are copied.
func FromVectors(vecs [][]float64) (*Dataset, error) {
	if len(vecs) == 0 {
		return nil, ErrEmpty
	}
	dim := len(vecs[0])
	if dim < 1 {
		return nil, ErrInvalidDim
	}
	data := make([]float64, 0, len(vecs)*dim)
	for i, v := range vecs {
		if len(v) != dim {
			return nil, &ErrRaggedData{Index: i, Expected: dim, Actual: len(v)}
		}
		data = append(data, v...)
	}
	return &Dataset{data: data, n: len(vecs), dim: dim}, nil
}

// Len returns the number of points N.
func (d *Dataset) Len() int { return d.n }

// Dim returns the point dimensionality D.
func (d *Dataset) Dim() int { return d.dim }

// At returns point i as a zero-copy view into the backing storage.
// The returned slice must not be mutated.
func (d *Dataset) At(i int) []float64 {
	return d.data[i*d.dim : (i+1)*d.dim]
}

// Raw returns the flattened backing slice. Read-only.
func (d *Dataset) Raw() []float64 { return d.data }

// Close releases backing storage for memory-mapped datasets.
// It is a no-op for in-memory datasets and is idempotent.
func (d *Dataset) Close() error {
	if d.unmap == nil {
		return nil
	}
	unmap := d.unmap
	d.unmap = nil
	d.data = nil
	return unmap()
}
