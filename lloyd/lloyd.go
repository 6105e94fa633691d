package lloyd

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/fjellheim/kmeans/dataset"
	"github.com/fjellheim/kmeans/distance"
)

type options struct {
	workers int
}

// Option configures a Stepper.
type Option func(*options)

// WithWorkers sets the number of goroutines used for the assignment phase.
// Values <= 0 fall back to runtime.GOMAXPROCS(0), the default.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Stepper computes single iterations of Lloyd's algorithm over a fixed
// dataset and metric. It holds no per-iteration state; separate calls are
// independent except for the cumulative distance-calculation counter, which
// is atomic. Methods are safe for concurrent use as long as the dataset
// stays immutable.
type Stepper struct {
	data    *dataset.Dataset
	dist    distance.Func
	workers int

	distanceCalcs atomic.Uint64
}

// New creates a Stepper over data using fn as the point metric.
// The dataset is referenced, not copied, and must stay immutable for the
// Stepper's lifetime.
func New(data *dataset.Dataset, fn distance.Func, opts ...Option) (*Stepper, error) {
	if data == nil || data.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if fn == nil {
		return nil, ErrNilMetric
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return &Stepper{data: data, dist: fn, workers: o.workers}, nil
}

// Iterate runs one iteration of Lloyd's algorithm: assign every point to its
// nearest centroid, then recompute each centroid as the mean of its assigned
// points.
//
// centroids is flattened row-major (k*dim); it is read-only during the call.
// The returned newCentroids has the same shape, counts has one entry per
// cluster, and distortion is sqrt(sum over clusters of Evaluate(old, new)^2)
// — zero exactly when no centroid moved.
//
// A cluster that attracts no points keeps a zero vector and a zero count;
// that is a valid result, not an error. Remediation (reseeding) is the
// caller's decision.
//
// The assignment phase is split into contiguous per-worker chunks, each
// accumulating into private buffers; workers merge into the shared result
// under a mutex once their chunk is done. Merge order only affects the
// result at floating-point rounding level.
func (s *Stepper) Iterate(centroids []float64) (newCentroids []float64, counts []int, distortion float64, err error) {
	k, err := s.checkCentroids(centroids)
	if err != nil {
		return nil, nil, 0, err
	}

	n := s.data.Len()
	dim := s.data.Dim()

	newCentroids = make([]float64, k*dim)
	counts = make([]int, k)

	var mu sync.Mutex
	var g errgroup.Group

	chunkSize := (n + s.workers - 1) / s.workers
	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		g.Go(func() error {
			localSums := make([]float64, k*dim)
			localCounts := make([]int, k)

			for i := start; i < end; i++ {
				closest, _, ok := s.nearest(s.data.At(i), centroids, k, dim)
				if !ok {
					return &ErrBrokenMetric{Point: i}
				}
				floats.Add(localSums[closest*dim:(closest+1)*dim], s.data.At(i))
				localCounts[closest]++
			}

			mu.Lock()
			floats.Add(newCentroids, localSums)
			for j, c := range localCounts {
				counts[j] += c
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, 0, err
	}
	s.distanceCalcs.Add(uint64(k * n))

	// Normalize sums into means. Empty clusters stay zero vectors.
	for j := 0; j < k; j++ {
		if counts[j] != 0 {
			floats.Scale(1/float64(counts[j]), newCentroids[j*dim:(j+1)*dim])
		}
	}

	var cNorm float64
	for j := 0; j < k; j++ {
		d := s.dist(centroids[j*dim:(j+1)*dim], newCentroids[j*dim:(j+1)*dim])
		cNorm += d * d
	}
	s.distanceCalcs.Add(uint64(k))

	return newCentroids, counts, math.Sqrt(cNorm), nil
}

// Assign labels every point with its nearest centroid under the same
// tie-break rule as Iterate (lowest index wins on equal distance).
func (s *Stepper) Assign(centroids []float64) ([]int, error) {
	k, err := s.checkCentroids(centroids)
	if err != nil {
		return nil, err
	}

	n := s.data.Len()
	dim := s.data.Dim()
	assignments := make([]int, n)

	var g errgroup.Group
	chunkSize := (n + s.workers - 1) / s.workers
	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				closest, _, ok := s.nearest(s.data.At(i), centroids, k, dim)
				if !ok {
					return &ErrBrokenMetric{Point: i}
				}
				assignments[i] = closest
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.distanceCalcs.Add(uint64(k * n))

	return assignments, nil
}

// DistanceCalculations returns the cumulative number of metric evaluations
// performed by this Stepper: k*n + k per Iterate, k*n per Assign.
// Diagnostic only.
func (s *Stepper) DistanceCalculations() uint64 {
	return s.distanceCalcs.Load()
}

// Workers returns the assignment-phase parallelism.
func (s *Stepper) Workers() int { return s.workers }

// nearest scans centroids in index order and keeps the first strict minimum,
// so exact ties resolve to the lowest index. ok is false only when every
// distance compared false against +Inf, i.e. the metric returned NaN for
// every centroid.
func (s *Stepper) nearest(point, centroids []float64, k, dim int) (closest int, minDist float64, ok bool) {
	closest = -1
	minDist = math.Inf(1)
	for j := 0; j < k; j++ {
		d := s.dist(point, centroids[j*dim:(j+1)*dim])
		if d < minDist {
			minDist = d
			closest = j
		}
	}
	return closest, minDist, closest >= 0
}

func (s *Stepper) checkCentroids(centroids []float64) (int, error) {
	if len(centroids) == 0 {
		return 0, ErrInvalidK
	}
	dim := s.data.Dim()
	if len(centroids)%dim != 0 {
		return 0, &ErrDimensionMismatch{Dim: dim, Length: len(centroids)}
	}
	return len(centroids) / dim, nil
}
