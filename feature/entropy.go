package feature

import (
	"github.com/hupe1980/conego/homology"
	"github.com/hupe1980/conego/internal/math32"
)

// EntropyOptions configures the persistence-entropy featurizer.
type EntropyOptions struct {
	// InfReplacement substitutes the death value of essential classes before
	// computing entropy. If zero, essential classes are dropped instead.
	InfReplacement float32
}

// Entropy computes the persistence entropy of a diagram: the Shannon entropy
// of the bar lengths normalized to a probability distribution. Longer
// dominant bars yield lower entropy; many bars of similar length yield
// higher entropy.
type Entropy struct {
	opts EntropyOptions
}

// NewEntropy creates a persistence-entropy featurizer.
func NewEntropy(optFns ...func(o *EntropyOptions)) *Entropy {
	opts := EntropyOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Entropy{opts: opts}
}

// WithInfReplacement substitutes v for infinite death values.
func WithInfReplacement(v float32) func(o *EntropyOptions) {
	return func(o *EntropyOptions) {
		o.InfReplacement = v
	}
}

// Featurize implements Featurizer. An empty dimension yields zero.
func (e *Entropy) Featurize(dgm homology.Diagram, dims []int) (map[int]float32, error) {
	out := make(map[int]float32, len(dims))
	for _, dim := range dims {
		pairs, err := pairsFor(dgm, dim)
		if err != nil {
			return nil, err
		}
		out[dim] = e.entropy(pairs)
	}
	return out, nil
}

func (e *Entropy) entropy(pairs []homology.Pair) float32 {
	lengths := make([]float32, 0, len(pairs))
	var total float32
	for _, p := range pairs {
		d := p.Death
		if p.Essential() {
			if e.opts.InfReplacement == 0 {
				continue
			}
			d = e.opts.InfReplacement
		}
		if l := d - p.Birth; l > 0 {
			lengths = append(lengths, l)
			total += l
		}
	}
	if total == 0 {
		return 0
	}

	var ent float32
	for _, l := range lengths {
		p := l / total
		ent -= p * math32.Log(p)
	}
	return ent
}
