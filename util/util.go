package util

import (
	"math"
	"math/rand"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomPoints generates uniformly random points in the unit cube.
func (r *RNG) GenerateRandomPoints(num int, dimensions int) [][]float32 {
	points := make([][]float32, num)
	for i := range points {
		points[i] = make([]float32, dimensions)
		for j := range points[i] {
			points[i][j] = r.rand.Float32()
		}
	}

	return points
}

// NoisyCircle generates num points on a circle of the given radius, each
// perturbed by uniform noise in [-noise, noise] per coordinate.
func (r *RNG) NoisyCircle(num int, radius, noise float64) [][]float32 {
	points := make([][]float32, num)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(num)
		points[i] = []float32{
			float32(radius*math.Cos(theta) + (2*r.rand.Float64()-1)*noise),
			float32(radius*math.Sin(theta) + (2*r.rand.Float64()-1)*noise),
		}
	}

	return points
}

// LinePoints generates num evenly spaced points on the x-axis.
func LinePoints(num int, spacing float32) [][]float32 {
	points := make([][]float32, num)
	for i := range points {
		points[i] = []float32{float32(i) * spacing, 0}
	}

	return points
}

// CirclePoints generates num evenly spaced points on a circle of the given
// radius centered at the origin.
func CirclePoints(num int, radius float64) [][]float32 {
	points := make([][]float32, num)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(num)
		points[i] = []float32{
			float32(radius * math.Cos(theta)),
			float32(radius * math.Sin(theta)),
		}
	}

	return points
}

// CrossPoints generates a plus-shaped cloud: a center point plus four arms
// of armLen points each along +x, -x, +y and -y with the given spacing. The
// center point is at index 0.
func CrossPoints(armLen int, spacing float32) [][]float32 {
	points := make([][]float32, 0, 1+4*armLen)
	points = append(points, []float32{0, 0})
	for i := 1; i <= armLen; i++ {
		d := float32(i) * spacing
		points = append(points,
			[]float32{d, 0},
			[]float32{-d, 0},
			[]float32{0, d},
			[]float32{0, -d},
		)
	}

	return points
}

// GridPoints generates an nx-by-ny grid of points with the given spacing.
func GridPoints(nx, ny int, spacing float32) [][]float32 {
	points := make([][]float32, 0, nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			points = append(points, []float32{float32(i) * spacing, float32(j) * spacing})
		}
	}

	return points
}
