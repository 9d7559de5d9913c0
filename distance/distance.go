// Package distance provides public API for point-to-point distance calculations.
package distance

import (
	"fmt"

	"github.com/hupe1980/conego/internal/math32"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return math32.Dot(a, b)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	return math32.SquaredL2(a, b)
}

// Euclidean calculates the L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float32) float32 {
	return math32.Sqrt(math32.SquaredL2(a, b))
}

// Manhattan calculates the L1 (taxicab) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Manhattan(a, b []float32) float32 {
	var d float32
	for i := range a {
		d += math32.Abs(a[i] - b[i])
	}
	return d
}

// Chebyshev calculates the L∞ (maximum coordinate) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Chebyshev(a, b []float32) float32 {
	var d float32
	for i := range a {
		if ad := math32.Abs(a[i] - b[i]); ad > d {
			d = ad
		}
	}
	return d
}

// Cosine calculates the cosine distance (1 - cosine similarity) between two
// vectors. A zero vector has distance 1 to everything by convention.
// Assumes vectors are the same length (caller's responsibility).
func Cosine(a, b []float32) float32 {
	magA := math32.Sqrt(math32.Dot(a, a))
	magB := math32.Sqrt(math32.Dot(b, b))
	if magA == 0 || magB == 0 {
		return 1
	}
	// float32 rounding can push the similarity slightly above 1 for parallel
	// vectors; a negative distance would violate matrix validation.
	if d := 1 - math32.Dot(a, b)/(magA*magB); d > 0 {
		return d
	}
	return 0
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := math32.Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math32.Sqrt(norm2)
	math32.ScaleInPlace(v, inv)
	return true
}

// Metric represents the distance metric used for point-cloud comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredL2
	MetricManhattan
	MetricChebyshev
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricSquaredL2:
		return "SquaredL2"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	case MetricCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	case MetricCosine:
		return Cosine, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
