// Package distance provides vector distance calculations for clustering.
//
// # Supported Metrics
//
//   - MetricSquaredEuclidean: squared L2 distance (default)
//   - MetricEuclidean: L2 distance
//   - MetricManhattan: L1 / city-block distance
//   - MetricCosine: 1 - cosine similarity
//
// # Usage
//
//	fn, err := distance.Provider(distance.MetricSquaredEuclidean)
//	d := fn(a, b)
//
// Custom metrics plug in as any distance.Func; the clustering core only
// requires determinism and non-negative results.
package distance
