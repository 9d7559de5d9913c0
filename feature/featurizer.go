package feature

import (
	"fmt"

	"github.com/hupe1980/conego/homology"
)

// ErrDimensionOutOfRange indicates a requested homology dimension that the
// persistence engine did not compute.
type ErrDimensionOutOfRange struct {
	Dim int
}

func (e *ErrDimensionOutOfRange) Error() string {
	return fmt.Sprintf("dimension out of range: %d not present in diagram", e.Dim)
}

// Featurizer converts a persistence diagram into one scalar per requested
// homology dimension. Implementations must be pure functions: no side
// effects, identical output for identical input.
type Featurizer interface {
	Featurize(dgm homology.Diagram, dims []int) (map[int]float32, error)
}

// pairsFor returns the diagram pairs for dim, failing when the dimension was
// not computed. An empty pair list is a valid result, not an error.
func pairsFor(dgm homology.Diagram, dim int) ([]homology.Pair, error) {
	pairs, ok := dgm[dim]
	if !ok {
		return nil, &ErrDimensionOutOfRange{Dim: dim}
	}
	return pairs, nil
}
