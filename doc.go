// Package kmeans provides parallel k-means clustering built around a
// reproducible Lloyd-iteration core.
//
// # Quick Start
//
//	ds, _ := dataset.FromVectors(points)
//	result, err := kmeans.Run(ds, 8,
//	    kmeans.WithSeed(42),
//	    kmeans.WithTolerance(1e-6),
//	)
//	// result.Centroids, result.Counts, result.Members
//
// # Layering
//
// The heavy lifting lives in the lloyd subpackage, which computes exactly
// one assignment/update iteration with the point set partitioned across
// worker goroutines. This package supplies everything the core deliberately
// leaves to the caller: centroid initialization (random or k-means++), the
// convergence loop, empty-cluster reseeding, progress logging, and metrics.
//
// Datasets come from the dataset package (in-memory, CSV with transparent
// zstd/lz4/gzip decompression, or memory-mapped binary point files), and
// metrics from the distance package; any deterministic non-negative
// distance.Func plugs in via WithDistanceFunc.
//
// # Reproducibility
//
// With a fixed seed, runs are deterministic for a given worker count.
// Changing the worker count only perturbs results at floating-point
// rounding level: on exact distance ties the lowest centroid index always
// wins, and per-point contributions are accumulated independently before a
// synchronized merge.
package kmeans
