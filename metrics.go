package kmeans

import (
	"sync/atomic"
	"time"
)

// Collector defines an interface for collecting clustering run metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type Collector interface {
	// RecordIteration is called after each Lloyd iteration with the
	// iteration number (1-based), the resulting distortion, and the time
	// taken.
	RecordIteration(iteration int, distortion float64, duration time.Duration)

	// RecordRun is called once per Run with the total iteration count,
	// whether the run converged within tolerance, and the total time taken.
	RecordRun(iterations int, converged bool, duration time.Duration)
}

// NoopCollector is a no-op implementation of Collector.
// Use this when metrics collection is not needed.
type NoopCollector struct{}

func (NoopCollector) RecordIteration(int, float64, time.Duration) {}
func (NoopCollector) RecordRun(int, bool, time.Duration)          {}

// BasicCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicCollector struct {
	IterationCount  atomic.Int64
	IterationNanos  atomic.Int64
	RunCount        atomic.Int64
	RunNanos        atomic.Int64
	ConvergedRuns   atomic.Int64
	LastDistortion  atomic.Value // float64
	TotalIterations atomic.Int64
}

// RecordIteration implements Collector.
func (b *BasicCollector) RecordIteration(_ int, distortion float64, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationNanos.Add(duration.Nanoseconds())
	b.LastDistortion.Store(distortion)
}

// RecordRun implements Collector.
func (b *BasicCollector) RecordRun(iterations int, converged bool, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunNanos.Add(duration.Nanoseconds())
	b.TotalIterations.Add(int64(iterations))
	if converged {
		b.ConvergedRuns.Add(1)
	}
}
