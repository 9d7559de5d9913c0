package model

import (
	"fmt"

	"github.com/hupe1980/conego/internal/math32"
)

// Inf is the sentinel for an absent edge in a dissimilarity matrix.
// Persistence engines must treat entries equal to Inf as "no edge".
var Inf = math32.Inf()

// ErrNonFiniteInput indicates a NaN encountered in distance data.
//
// The offending position (if known) can be accessed via the typed error.
type ErrNonFiniteInput struct {
	Row, Col int
}

func (e *ErrNonFiniteInput) Error() string {
	return fmt.Sprintf("non-finite input: NaN at (%d,%d)", e.Row, e.Col)
}

// ErrInvalidMatrix indicates malformed dissimilarity data.
type ErrInvalidMatrix struct {
	Reason string
}

func (e *ErrInvalidMatrix) Error() string {
	return fmt.Sprintf("invalid dissimilarity matrix: %s", e.Reason)
}

// DistanceMatrix is a dense, symmetric dissimilarity matrix with zero
// diagonal. Off-diagonal entries are non-negative; Inf marks an absent edge.
//
// The zero value is not usable; construct via NewDistanceMatrix or
// DistanceMatrixFromRows.
type DistanceMatrix struct {
	n    int
	data []float32 // row-major, n*n
}

// NewDistanceMatrix allocates an n×n matrix with all off-diagonal entries
// set to Inf (no edges) and a zero diagonal.
func NewDistanceMatrix(n int) *DistanceMatrix {
	m := &DistanceMatrix{
		n:    n,
		data: make([]float32, n*n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				m.data[i*n+j] = Inf
			}
		}
	}
	return m
}

// DistanceMatrixFromRows builds a matrix from row data, validating shape and
// the dissimilarity invariants (square, symmetric, zero diagonal,
// non-negative off-diagonal, no NaN).
func DistanceMatrixFromRows(rows [][]float32) (*DistanceMatrix, error) {
	n := len(rows)
	m := &DistanceMatrix{
		n:    n,
		data: make([]float32, n*n),
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, &ErrInvalidMatrix{Reason: fmt.Sprintf("row %d has %d columns, want %d", i, len(row), n)}
		}
		copy(m.data[i*n:(i+1)*n], row)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Len returns the number of rows (= columns).
func (m *DistanceMatrix) Len() int {
	return m.n
}

// At returns the entry at (i, j).
func (m *DistanceMatrix) At(i, j int) float32 {
	return m.data[i*m.n+j]
}

// Set writes the entry at (i, j) and its mirror (j, i).
func (m *DistanceMatrix) Set(i, j int, v float32) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Row returns a copy of row i.
func (m *DistanceMatrix) Row(i int) []float32 {
	out := make([]float32, m.n)
	copy(out, m.data[i*m.n:(i+1)*m.n])
	return out
}

// Submatrix returns a fresh matrix restricted to the given original indices,
// in the given order. Indices must be valid; duplicates are not checked.
func (m *DistanceMatrix) Submatrix(idx []int) *DistanceMatrix {
	k := len(idx)
	sub := &DistanceMatrix{
		n:    k,
		data: make([]float32, k*k),
	}
	for a, i := range idx {
		for b, j := range idx {
			sub.data[a*k+b] = m.data[i*m.n+j]
		}
	}
	return sub
}

// Validate checks the dissimilarity invariants: symmetry, zero diagonal,
// non-negative off-diagonal entries and absence of NaN values.
func (m *DistanceMatrix) Validate() error {
	for i := 0; i < m.n; i++ {
		if d := m.data[i*m.n+i]; d != 0 {
			if math32.IsNaN(d) {
				return &ErrNonFiniteInput{Row: i, Col: i}
			}
			return &ErrInvalidMatrix{Reason: fmt.Sprintf("non-zero diagonal at %d", i)}
		}
		for j := i + 1; j < m.n; j++ {
			v := m.data[i*m.n+j]
			if math32.IsNaN(v) {
				return &ErrNonFiniteInput{Row: i, Col: j}
			}
			if v != m.data[j*m.n+i] {
				return &ErrInvalidMatrix{Reason: fmt.Sprintf("asymmetric at (%d,%d)", i, j)}
			}
			if v < 0 {
				return &ErrInvalidMatrix{Reason: fmt.Sprintf("negative entry at (%d,%d)", i, j)}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the matrix.
func (m *DistanceMatrix) Clone() *DistanceMatrix {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &DistanceMatrix{n: m.n, data: data}
}
