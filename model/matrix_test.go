package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistanceMatrix(t *testing.T) {
	m := NewDistanceMatrix(3)

	assert.Equal(t, 3, m.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(0), m.At(i, i))
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Equal(t, Inf, m.At(i, j))
			}
		}
	}
}

func TestDistanceMatrixFromRows(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := DistanceMatrixFromRows([][]float32{
			{0, 1, 2},
			{1, 0, 3},
			{2, 3, 0},
		})
		require.NoError(t, err)
		assert.Equal(t, float32(3), m.At(1, 2))
		assert.Equal(t, float32(3), m.At(2, 1))
	})

	t.Run("NotSquare", func(t *testing.T) {
		_, err := DistanceMatrixFromRows([][]float32{
			{0, 1},
			{1, 0, 2},
		})
		var ie *ErrInvalidMatrix
		require.ErrorAs(t, err, &ie)
	})

	t.Run("Asymmetric", func(t *testing.T) {
		_, err := DistanceMatrixFromRows([][]float32{
			{0, 1},
			{2, 0},
		})
		var ie *ErrInvalidMatrix
		require.ErrorAs(t, err, &ie)
	})

	t.Run("NonZeroDiagonal", func(t *testing.T) {
		_, err := DistanceMatrixFromRows([][]float32{
			{1, 1},
			{1, 0},
		})
		var ie *ErrInvalidMatrix
		require.ErrorAs(t, err, &ie)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := DistanceMatrixFromRows([][]float32{
			{0, -1},
			{-1, 0},
		})
		var ie *ErrInvalidMatrix
		require.ErrorAs(t, err, &ie)
	})

	t.Run("NaN", func(t *testing.T) {
		nan := float32(math.NaN())
		_, err := DistanceMatrixFromRows([][]float32{
			{0, nan},
			{nan, 0},
		})
		var nf *ErrNonFiniteInput
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, 0, nf.Row)
		assert.Equal(t, 1, nf.Col)
	})

	t.Run("InfIsValid", func(t *testing.T) {
		// Inf is the absent-edge sentinel, not an error.
		_, err := DistanceMatrixFromRows([][]float32{
			{0, Inf},
			{Inf, 0},
		})
		require.NoError(t, err)
	})
}

func TestDistanceMatrixSubmatrix(t *testing.T) {
	m, err := DistanceMatrixFromRows([][]float32{
		{0, 1, 2, 3},
		{1, 0, 4, 5},
		{2, 4, 0, 6},
		{3, 5, 6, 0},
	})
	require.NoError(t, err)

	sub := m.Submatrix([]int{3, 1})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, float32(0), sub.At(0, 0))
	assert.Equal(t, float32(5), sub.At(0, 1))
	assert.Equal(t, float32(5), sub.At(1, 0))
}

func TestDistanceMatrixSetAndClone(t *testing.T) {
	m := NewDistanceMatrix(2)
	m.Set(0, 1, 7)
	assert.Equal(t, float32(7), m.At(1, 0))

	c := m.Clone()
	c.Set(0, 1, 9)
	assert.Equal(t, float32(7), m.At(0, 1))
	assert.Equal(t, float32(9), c.At(0, 1))
}
