// Package lloyd implements a single parallel iteration of Lloyd's algorithm
// for k-means clustering.
//
// The iteration runs in three phases: points are partitioned into contiguous
// chunks assigned to worker goroutines, each of which accumulates nearest-
// centroid sums into private buffers (no shared writes); the private partial
// results are merged into the shared accumulators under a mutex; finally the
// sums are normalized into means and a scalar distortion — the total centroid
// displacement — is computed as the caller's convergence signal.
//
// The result is independent of how points are partitioned across workers, up
// to floating-point rounding in the merge order. On exact distance ties the
// lowest centroid index wins, so assignments are reproducible.
//
// The package deliberately stops at one iteration: convergence decisions,
// centroid initialization, and empty-cluster reseeding belong to the outer
// driver (see the parent kmeans package).
package lloyd
