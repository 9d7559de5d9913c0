package model

import (
	"fmt"

	"github.com/hupe1980/conego/distance"
	"github.com/hupe1980/conego/internal/math32"
)

// PointCloud is an ordered, immutable sequence of fixed-dimension points in a
// metric space. It is read-only input: analyses never mutate it.
type PointCloud struct {
	points [][]float32
	dim    int
}

// NewPointCloud validates and wraps the given points. All points must share
// the same dimension and contain only finite coordinates. The slice is
// retained; the caller must not mutate it afterwards.
func NewPointCloud(points [][]float32) (*PointCloud, error) {
	dim := 0
	for i, p := range points {
		if i == 0 {
			dim = len(p)
		} else if len(p) != dim {
			return nil, &ErrInvalidMatrix{Reason: fmt.Sprintf("point %d has dimension %d, want %d", i, len(p), dim)}
		}
		for j, v := range p {
			if !math32.IsFinite(v) {
				return nil, &ErrNonFiniteInput{Row: i, Col: j}
			}
		}
	}
	return &PointCloud{points: points, dim: dim}, nil
}

// Len returns the number of points.
func (p *PointCloud) Len() int {
	return len(p.points)
}

// Dim returns the point dimension.
func (p *PointCloud) Dim() int {
	return p.dim
}

// Point returns the i-th point. The returned slice must not be mutated.
func (p *PointCloud) Point(i int) []float32 {
	return p.points[i]
}

// DistanceMatrix computes the full pairwise dissimilarity matrix under the
// given metric. The result is symmetric with zero diagonal.
func (p *PointCloud) DistanceMatrix(metric distance.Metric) (*DistanceMatrix, error) {
	fn, err := distance.Provider(metric)
	if err != nil {
		return nil, err
	}

	n := len(p.points)
	m := &DistanceMatrix{
		n:    n,
		data: make([]float32, n*n),
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := fn(p.points[i], p.points[j])
			if math32.IsNaN(d) {
				return nil, &ErrNonFiniteInput{Row: i, Col: j}
			}
			m.data[i*n+j] = d
			m.data[j*n+i] = d
		}
	}
	return m, nil
}
