// Package distance provides point-to-point distance calculations.
//
// All functions operate on float32 vectors of equal length.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default for neighborhood radii)
//   - MetricSquaredL2: Squared Euclidean distance
//   - MetricManhattan: L1 (taxicab) distance
//   - MetricChebyshev: L∞ (maximum coordinate) distance
//   - MetricCosine: Cosine distance (1 - cosine similarity)
//
// # Usage
//
//	dist := distance.Euclidean(a, b)
//	fn, _ := distance.Provider(distance.MetricManhattan)
//
// Radius-based neighborhood bounds compare raw metric values, so pick a
// metric whose scale matches the radii you configure. MetricEuclidean is the
// conventional choice for geometric point clouds.
package distance
