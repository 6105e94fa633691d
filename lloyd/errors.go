package lloyd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when the centroid set is empty.
	ErrInvalidK = errors.New("k must be positive")
	// ErrEmptyDataset is returned when the dataset has no points.
	ErrEmptyDataset = errors.New("dataset must contain at least one point")
	// ErrNilMetric is returned when no distance function is supplied.
	ErrNilMetric = errors.New("distance function must not be nil")
)

// ErrDimensionMismatch indicates centroids whose flattened length is not a
// multiple of the dataset dimension.
type ErrDimensionMismatch struct {
	Dim    int // dataset dimensionality
	Length int // flattened centroid length
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("centroid length %d is not a multiple of dimension %d", e.Length, e.Dim)
}

// ErrBrokenMetric indicates that no centroid compared closest to some point,
// which is only possible when the metric produced NaN for every centroid.
// The call that observes it aborts without producing output.
type ErrBrokenMetric struct {
	Point int // dataset index of the offending point
}

func (e *ErrBrokenMetric) Error() string {
	return fmt.Sprintf("no closest centroid for point %d: metric returned NaN", e.Point)
}
