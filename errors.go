package conego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/conego/feature"
	"github.com/hupe1980/conego/homology"
	"github.com/hupe1980/conego/model"
	"github.com/hupe1980/conego/neighborhood"
)

var (
	// ErrInvalidSpec is returned when a neighborhood spec is malformed.
	ErrInvalidSpec = errors.New("invalid neighborhood spec")

	// ErrInsufficientPoints is returned when a neighborhood has too few
	// points to build a local complex.
	ErrInsufficientPoints = errors.New("insufficient points in neighborhood")

	// ErrDimensionOutOfRange is returned when a requested homology
	// dimension is not available.
	ErrDimensionOutOfRange = errors.New("homology dimension out of range")

	// ErrNonFiniteInput is returned when input distances or coordinates
	// contain NaN.
	ErrNonFiniteInput = errors.New("non-finite input")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Spec and neighborhood normalization.
	var is *neighborhood.ErrInvalidSpec
	if errors.As(err, &is) {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	var ip *neighborhood.ErrInsufficientPoints
	if errors.As(err, &ip) {
		return fmt.Errorf("%w: %w", ErrInsufficientPoints, err)
	}

	// Input validation normalization.
	var nf *model.ErrNonFiniteInput
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %w", ErrNonFiniteInput, err)
	}
	var im *model.ErrInvalidMatrix
	if errors.As(err, &im) {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	// Dimension normalization.
	var dr *feature.ErrDimensionOutOfRange
	if errors.As(err, &dr) {
		return fmt.Errorf("%w: %w", ErrDimensionOutOfRange, err)
	}
	var ud *homology.ErrUnsupportedDimension
	if errors.As(err, &ud) {
		return fmt.Errorf("%w: %w", ErrDimensionOutOfRange, err)
	}

	return err
}
