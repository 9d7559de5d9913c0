package neighborhood

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/conego/internal/math32"
	"github.com/hupe1980/conego/model"
)

// Selection is the three-way partition of a point cloud around a reference
// point. Kept and Coned hold original point indices ordered by
// (distance, index) ascending; Discarded holds everything beyond the outer
// bound, including unreachable points.
type Selection struct {
	// Ref is the reference point's original index.
	Ref int

	// Kept points lie within the inner bound and retain their original
	// pairwise distances in the local complex.
	Kept []int

	// Coned points lie strictly between the inner and outer bound and are
	// linked to the synthetic cone vertex.
	Coned []int

	// ConeDists holds, parallel to Coned, each coned point's distance to the
	// reference point. These become the cone-edge weights.
	ConeDists []float32

	// Discarded is the set of excluded original indices.
	Discarded *roaring.Bitmap
}

// Size returns the number of selected points including the reference point
// but excluding the synthetic cone vertex.
func (s *Selection) Size() int {
	return 1 + len(s.Kept) + len(s.Coned)
}

// OuterBound returns the largest selected distance to the reference point,
// i.e. the effective outer radius of the neighborhood.
func (s *Selection) OuterBound() float32 {
	if n := len(s.ConeDists); n > 0 {
		return s.ConeDists[n-1]
	}
	return 0
}

// Select partitions the points of m around ref according to spec.
//
// Candidates are ordered by (distance to ref, original index) ascending;
// points at Inf distance (absent edges) are never selectable. NaN distances
// fail with model.ErrNonFiniteInput.
func Select(m *model.DistanceMatrix, ref int, spec Spec) (*Selection, error) {
	n := m.Len()
	if ref < 0 || ref >= n {
		return nil, &ErrInvalidSpec{Reason: fmt.Sprintf("reference index %d out of range [0,%d)", ref, n)}
	}
	if err := spec.Validate(n); err != nil {
		return nil, err
	}

	cands := make([]int, 0, n-1)
	dists := make([]float32, 0, n-1)
	discarded := roaring.New()

	for i := 0; i < n; i++ {
		if i == ref {
			continue
		}
		d := m.At(ref, i)
		if math32.IsNaN(d) {
			return nil, &model.ErrNonFiniteInput{Row: ref, Col: i}
		}
		if math32.IsInf(d) {
			discarded.Add(uint32(i))
			continue
		}
		cands = append(cands, i)
		dists = append(dists, d)
	}

	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if dists[order[a]] != dists[order[b]] {
			return dists[order[a]] < dists[order[b]]
		}
		return cands[order[a]] < cands[order[b]]
	})

	sortedCands := make([]int, len(cands))
	sortedDists := make([]float32, len(cands))
	for i, o := range order {
		sortedCands[i] = cands[o]
		sortedDists[i] = dists[o]
	}

	keptEnd, conedEnd, err := spec.partition(sortedCands, sortedDists)
	if err != nil {
		return nil, err
	}

	for _, i := range sortedCands[conedEnd:] {
		discarded.Add(uint32(i))
	}

	return &Selection{
		Ref:       ref,
		Kept:      sortedCands[:keptEnd:keptEnd],
		Coned:     sortedCands[keptEnd:conedEnd:conedEnd],
		ConeDists: sortedDists[keptEnd:conedEnd:conedEnd],
		Discarded: discarded,
	}, nil
}
