package kmeans

import (
	"time"

	"github.com/fjellheim/kmeans/distance"
)

// InitStrategy selects how the initial centroids are chosen.
type InitStrategy int

const (
	// InitRandom picks k distinct points uniformly at random.
	InitRandom InitStrategy = iota
	// InitKMeansPlusPlus uses D² weighted sampling, which usually converges
	// in fewer iterations at the cost of k extra passes over the data.
	InitKMeansPlusPlus
)

type options struct {
	metric        distance.Metric
	distFn        distance.Func
	maxIterations int
	tolerance     float64
	init          InitStrategy
	initial       []float64
	seed          int64
	seeded        bool
	workers       int
	reseedEmpty   bool
	logger        *Logger
	collector     Collector
}

func defaultOptions() options {
	return options{
		metric:        distance.MetricSquaredEuclidean,
		maxIterations: 100,
		tolerance:     1e-4,
		init:          InitRandom,
		reseedEmpty:   true,
		logger:        NoopLogger(),
		collector:     NoopCollector{},
	}
}

// Option configures a clustering run.
type Option func(*options)

// WithMetric selects a built-in distance metric.
// Default: distance.MetricSquaredEuclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithDistanceFunc supplies a custom distance function, overriding
// WithMetric. The function must be deterministic and non-negative.
func WithDistanceFunc(fn distance.Func) Option {
	return func(o *options) {
		o.distFn = fn
	}
}

// WithMaxIterations caps the number of Lloyd iterations. Default: 100.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithTolerance sets the distortion threshold below which the run is
// considered converged. Default: 1e-4. Zero demands an exact fixpoint.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithInit selects the centroid initialization strategy.
// Default: InitRandom.
func WithInit(s InitStrategy) Option {
	return func(o *options) {
		o.init = s
	}
}

// WithInitialCentroids supplies explicit starting centroids (flattened
// row-major, k*dim), bypassing the initialization strategy. The slice is
// copied.
func WithInitialCentroids(centroids []float64) Option {
	return func(o *options) {
		o.initial = append([]float64(nil), centroids...)
	}
}

// WithSeed fixes the random source used for initialization and reseeding,
// making runs reproducible. Without it the seed is taken from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithWorkers sets the assignment-phase parallelism of the underlying
// iteration core. Values <= 0 use runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithReseedEmpty controls whether clusters that end an iteration empty are
// re-anchored on a random data point before the next iteration.
// Default: true. When disabled, empty clusters keep zero-vector centroids,
// which is the raw core behavior.
func WithReseedEmpty(enabled bool) Option {
	return func(o *options) {
		o.reseedEmpty = enabled
	}
}

// WithLogger sets the logger for progress output. Default: NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithCollector sets the metrics collector. Default: NoopCollector.
func WithCollector(c Collector) Option {
	return func(o *options) {
		if c == nil {
			c = NoopCollector{}
		}
		o.collector = c
	}
}

func (o *options) resolveSeed() int64 {
	if o.seeded {
		return o.seed
	}
	return time.Now().UnixNano()
}
