// Package distance provides the pluggable metrics used for point/centroid
// comparison.
package distance

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Metric identifies a distance metric used for point comparison.
type Metric int

const (
	// MetricSquaredEuclidean is squared L2 distance, the k-means default.
	// It preserves nearest-centroid ordering while skipping the sqrt.
	MetricSquaredEuclidean Metric = iota
	MetricEuclidean
	MetricManhattan
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricSquaredEuclidean:
		return "SquaredEuclidean"
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
// Implementations must be deterministic, must not mutate their inputs, and
// must return a non-negative value for valid inputs.
// Assumes vectors are the same length (caller's responsibility).
type Func func(a, b []float64) float64

// SquaredEuclidean calculates the squared L2 distance between two vectors.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean calculates the L2 distance between two vectors.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Manhattan calculates the L1 (city-block) distance between two vectors.
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Cosine calculates the cosine distance 1 - cos(a, b).
// A zero vector on either side yields NaN (0/0), which callers treat as a
// broken-metric condition.
func Cosine(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	return 1 - dot/(na*nb)
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricSquaredEuclidean:
		return SquaredEuclidean, nil
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricCosine:
		return Cosine, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float64) bool {
	if len(v) == 0 {
		return false
	}
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return false
	}
	floats.Scale(1/norm, v)
	return true
}
