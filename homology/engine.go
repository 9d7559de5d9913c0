package homology

import (
	"context"
	"fmt"

	"github.com/hupe1980/conego/internal/math32"
	"github.com/hupe1980/conego/model"
)

// Pair is a birth/death pair of a persistent homology class.
// Death is model.Inf for essential classes that never die.
type Pair struct {
	Birth float32
	Death float32
}

// Persistence returns Death - Birth (Inf for essential classes).
func (p Pair) Persistence() float32 {
	return p.Death - p.Birth
}

// Essential reports whether the class never dies.
func (p Pair) Essential() bool {
	return math32.IsInf(p.Death)
}

// Diagram maps a homology dimension to its birth/death pairs.
type Diagram map[int][]Pair

// ErrUnsupportedDimension indicates a requested homology dimension beyond
// what the engine computes.
type ErrUnsupportedDimension struct {
	Requested int
	Max       int
}

func (e *ErrUnsupportedDimension) Error() string {
	return fmt.Sprintf("unsupported homology dimension: %d (engine computes up to %d)", e.Requested, e.Max)
}

// Engine computes persistent homology of a dissimilarity matrix.
//
// Implementations must honor model.Inf entries as absent edges and treat the
// input as read-only. Engines are expected to be pure: identical input must
// yield identical diagrams.
type Engine interface {
	// Persistence returns the diagram of the clique (flag) complex of m for
	// all dimensions 0..maxDim.
	Persistence(ctx context.Context, m *model.DistanceMatrix, maxDim int) (Diagram, error)
}
