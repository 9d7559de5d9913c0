package feature

import (
	"github.com/hupe1980/conego/homology"
)

// BarCount counts the number of bars per homology dimension. It is the
// simplest featurizer and directly answers "how many local components /
// loops does the neighborhood have".
type BarCount struct {
	// MinPersistence drops bars shorter than this threshold. Essential bars
	// are never dropped.
	MinPersistence float32
}

// NewBarCount creates a bar-count featurizer.
func NewBarCount() *BarCount {
	return &BarCount{}
}

// Featurize implements Featurizer.
func (c *BarCount) Featurize(dgm homology.Diagram, dims []int) (map[int]float32, error) {
	out := make(map[int]float32, len(dims))
	for _, dim := range dims {
		pairs, err := pairsFor(dgm, dim)
		if err != nil {
			return nil, err
		}
		n := 0
		for _, p := range pairs {
			if p.Essential() || p.Persistence() > c.MinPersistence {
				n++
			}
		}
		out[dim] = float32(n)
	}
	return out, nil
}
