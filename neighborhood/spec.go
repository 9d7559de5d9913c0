package neighborhood

import (
	"fmt"

	"github.com/hupe1980/conego/internal/math32"
)

// ErrInvalidSpec indicates malformed neighborhood bounds.
type ErrInvalidSpec struct {
	Reason string
}

func (e *ErrInvalidSpec) Error() string {
	return fmt.Sprintf("invalid neighborhood spec: %s", e.Reason)
}

// ErrInsufficientPoints indicates that the point cloud is too small for the
// requested spec, or that no point falls within the outer bound.
type ErrInsufficientPoints struct {
	Need, Have int
}

func (e *ErrInsufficientPoints) Error() string {
	return fmt.Sprintf("insufficient points: need %d candidates, have %d", e.Need, e.Have)
}

// Spec defines how points are partitioned around a reference point.
// The set of implementations is closed: RadiusSpec and KNNSpec.
type Spec interface {
	// Validate checks the spec against the point-cloud size.
	Validate(numPoints int) error

	// partition splits the sorted candidates into kept and coned prefixes.
	// cands are candidate indices sorted by (distance, original index)
	// ascending with non-finite distances excluded; dists is parallel.
	// It returns the end offsets of the kept and coned ranges.
	partition(cands []int, dists []float32) (keptEnd, conedEnd int, err error)
}

// RadiusSpec selects neighborhoods by raw metric distance to the reference
// point: kept for d <= Inner, coned for Inner < d <= Outer.
type RadiusSpec struct {
	Inner float32
	Outer float32
}

// Validate implements Spec.
func (s RadiusSpec) Validate(numPoints int) error {
	if math32.IsNaN(s.Inner) || math32.IsNaN(s.Outer) {
		return &ErrInvalidSpec{Reason: "radius bounds must not be NaN"}
	}
	if s.Inner < 0 {
		return &ErrInvalidSpec{Reason: fmt.Sprintf("inner radius %v is negative", s.Inner)}
	}
	if s.Inner > s.Outer {
		return &ErrInvalidSpec{Reason: fmt.Sprintf("inner radius %v exceeds outer radius %v", s.Inner, s.Outer)}
	}
	return nil
}

func (s RadiusSpec) partition(cands []int, dists []float32) (int, int, error) {
	keptEnd := 0
	for keptEnd < len(cands) && dists[keptEnd] <= s.Inner {
		keptEnd++
	}
	conedEnd := keptEnd
	for conedEnd < len(cands) && dists[conedEnd] <= s.Outer {
		conedEnd++
	}
	if conedEnd == 0 {
		return 0, 0, &ErrInsufficientPoints{Need: 1, Have: 0}
	}
	return keptEnd, conedEnd, nil
}

// KNNSpec selects neighborhoods by rank order of distance to the reference
// point: the InnerK closest points are kept, the next OuterK-InnerK are
// coned. Ties in distance are broken by original point index, so results are
// reproducible for identical input.
type KNNSpec struct {
	InnerK int
	OuterK int
}

// Validate implements Spec.
func (s KNNSpec) Validate(numPoints int) error {
	if s.InnerK < 1 {
		return &ErrInvalidSpec{Reason: fmt.Sprintf("inner k %d must be positive", s.InnerK)}
	}
	if s.InnerK > s.OuterK {
		return &ErrInvalidSpec{Reason: fmt.Sprintf("inner k %d exceeds outer k %d", s.InnerK, s.OuterK)}
	}
	if s.OuterK > numPoints-1 {
		return &ErrInsufficientPoints{Need: s.OuterK + 1, Have: numPoints}
	}
	return nil
}

func (s KNNSpec) partition(cands []int, dists []float32) (int, int, error) {
	// Candidates with Inf distance (unreachable vertices of a precomputed
	// matrix) are excluded before partitioning, so the rank order may hold
	// fewer points than the cloud size suggests.
	if len(cands) < s.OuterK {
		return 0, 0, &ErrInsufficientPoints{Need: s.OuterK, Have: len(cands)}
	}
	return s.InnerK, s.OuterK, nil
}
