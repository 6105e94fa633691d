package kmeans

import (
	"math"
	"math/rand"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/time/rate"

	"github.com/fjellheim/kmeans/dataset"
	"github.com/fjellheim/kmeans/distance"
	"github.com/fjellheim/kmeans/lloyd"
)

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids is the final centroid set, flattened row-major (k*dim).
	Centroids []float64

	// Counts holds the number of points assigned to each cluster under the
	// final centroids.
	Counts []int

	// Members holds, per cluster, the bitmap of dataset indices assigned to
	// it under the final centroids.
	Members []*roaring.Bitmap

	// Iterations is the number of Lloyd iterations performed.
	Iterations int

	// Distortion is the centroid displacement of the last iteration, the
	// convergence signal.
	Distortion float64

	// Converged reports whether Distortion dropped to the configured
	// tolerance before the iteration cap.
	Converged bool

	// DistanceCalculations is the total number of metric evaluations.
	DistanceCalculations uint64
}

// Run clusters data into k groups with Lloyd's algorithm: initialize
// centroids, iterate assignment/update steps until the centroid displacement
// falls within tolerance or the iteration cap is hit, then label every point
// against the final centroids.
//
// Empty clusters are re-anchored on random data points between iterations
// unless disabled with WithReseedEmpty(false). Runs are reproducible under
// WithSeed for a fixed worker count; across worker counts results agree up
// to floating-point rounding.
func Run(data *dataset.Dataset, k int, opts ...Option) (*Result, error) {
	start := time.Now()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if k < 1 {
		return nil, ErrInvalidK
	}
	if o.maxIterations < 1 {
		return nil, ErrInvalidIterations
	}
	if o.tolerance < 0 {
		return nil, ErrInvalidTolerance
	}

	distFn := o.distFn
	if distFn == nil {
		fn, err := distance.Provider(o.metric)
		if err != nil {
			return nil, err
		}
		distFn = fn
	}

	stepper, err := lloyd.New(data, distFn, lloyd.WithWorkers(o.workers))
	if err != nil {
		return nil, err
	}
	if data.Len() < k {
		return nil, ErrTooFewPoints
	}

	rng := rand.New(rand.NewSource(o.resolveSeed()))

	var centroids []float64
	switch {
	case o.initial != nil:
		if len(o.initial) != k*data.Dim() {
			return nil, &lloyd.ErrDimensionMismatch{Dim: data.Dim(), Length: len(o.initial)}
		}
		centroids = o.initial
	case o.init == InitKMeansPlusPlus:
		centroids = initPlusPlus(rng, data, k, distFn)
	default:
		centroids = initRandom(rng, data, k)
	}

	logger := o.logger.WithK(k).WithPoints(data.Len()).WithDimension(data.Dim())
	logger.Info("clustering started",
		"metric", o.metric.String(), "workers", stepper.Workers())

	// Throttle per-iteration progress so long runs do not flood the log.
	progress := rate.Sometimes{First: 3, Interval: time.Second}

	dim := data.Dim()
	var (
		distortion float64
		iterations int
		converged  bool
	)
	for i := 1; i <= o.maxIterations; i++ {
		iterStart := time.Now()
		next, counts, dist, err := stepper.Iterate(centroids)
		if err != nil {
			return nil, err
		}
		o.collector.RecordIteration(i, dist, time.Since(iterStart))
		progress.Do(func() {
			logger.WithIteration(i).Info("iteration", "distortion", dist)
		})

		centroids, distortion, iterations = next, dist, i

		reseeded := false
		if o.reseedEmpty {
			for j, c := range counts {
				if c != 0 {
					continue
				}
				copy(centroids[j*dim:(j+1)*dim], data.At(rng.Intn(data.Len())))
				reseeded = true
			}
		}
		// A reseeded centroid invalidates this iteration's displacement as a
		// convergence signal.
		if !reseeded && distortion <= o.tolerance {
			converged = true
			break
		}
	}

	assignments, err := stepper.Assign(centroids)
	if err != nil {
		return nil, err
	}
	members := make([]*roaring.Bitmap, k)
	for j := range members {
		members[j] = roaring.New()
	}
	for i, c := range assignments {
		members[c].Add(uint32(i))
	}
	counts := make([]int, k)
	for j := range counts {
		counts[j] = int(members[j].GetCardinality())
	}

	result := &Result{
		Centroids:            centroids,
		Counts:               counts,
		Members:              members,
		Iterations:           iterations,
		Distortion:           distortion,
		Converged:            converged,
		DistanceCalculations: stepper.DistanceCalculations(),
	}

	o.collector.RecordRun(iterations, converged, time.Since(start))
	logger.Info("clustering finished",
		"iterations", iterations, "converged", converged,
		"distortion", distortion, "elapsed", time.Since(start))

	return result, nil
}

// initRandom picks k distinct points as the starting centroids.
func initRandom(rng *rand.Rand, data *dataset.Dataset, k int) []float64 {
	dim := data.Dim()
	centroids := make([]float64, k*dim)
	perm := rng.Perm(data.Len())
	for i := 0; i < k; i++ {
		copy(centroids[i*dim:(i+1)*dim], data.At(perm[i]))
	}
	return centroids
}

// initPlusPlus performs k-means++ initialization: after a uniform first
// pick, each further centroid is sampled with probability proportional to
// the point's distance to its nearest chosen centroid.
func initPlusPlus(rng *rand.Rand, data *dataset.Dataset, k int, dist distance.Func) []float64 {
	n := data.Len()
	dim := data.Dim()

	centroids := make([]float64, k*dim)
	copy(centroids[0:dim], data.At(rng.Intn(n)))

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = math.Inf(1)
	}

	for c := 0; c < k; c++ {
		center := centroids[c*dim : (c+1)*dim]
		for i := 0; i < n; i++ {
			if d := dist(data.At(i), center); d < weights[i] {
				weights[i] = d
			}
		}
		if c < k-1 {
			idx := weightedSample(rng, weights)
			copy(centroids[(c+1)*dim:(c+2)*dim], data.At(idx))
		}
	}
	return centroids
}

func weightedSample(rng *rand.Rand, weights []float64) int {
	var sum float64
	for _, w := range weights {
		sum += w
	}

	var acc float64
	target := sum * rng.Float64()
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	// All weights zero (duplicate points). Fall back to uniform.
	return rng.Intn(len(weights))
}
