package cone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/conego/model"
	"github.com/hupe1980/conego/neighborhood"
)

func lineMatrix(t *testing.T, n int) *model.DistanceMatrix {
	t.Helper()

	rows := make([][]float32, n)
	for i := range rows {
		rows[i] = make([]float32, n)
		for j := range rows[i] {
			d := i - j
			if d < 0 {
				d = -d
			}
			rows[i][j] = float32(d)
		}
	}

	m, err := model.DistanceMatrixFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestAugment(t *testing.T) {
	m := lineMatrix(t, 5)

	sel, err := neighborhood.Select(m, 0, neighborhood.RadiusSpec{Inner: 1, Outer: 3})
	require.NoError(t, err)
	// Layout: [0(ref), 1(kept), 2, 3(coned), cone].

	lc := Augment(m, sel)
	require.Equal(t, 5, lc.Len())

	t.Run("OriginalDistancesPreserved", func(t *testing.T) {
		assert.Equal(t, float32(1), lc.At(0, 1)) // ref-1
		assert.Equal(t, float32(2), lc.At(0, 2)) // ref-2
		assert.Equal(t, float32(1), lc.At(1, 2)) // 1-2
		assert.Equal(t, float32(2), lc.At(1, 3)) // 1-3
	})

	t.Run("ConeEdges", func(t *testing.T) {
		cone := 4
		assert.Equal(t, model.Inf, lc.At(0, cone)) // no edge to ref
		assert.Equal(t, model.Inf, lc.At(1, cone)) // no edge to kept
		assert.Equal(t, float32(2), lc.At(2, cone))
		assert.Equal(t, float32(3), lc.At(3, cone))
	})

	t.Run("ValidDissimilarityMatrix", func(t *testing.T) {
		require.NoError(t, lc.Validate())
		for i := 0; i < lc.Len(); i++ {
			assert.Equal(t, float32(0), lc.At(i, i))
			for j := 0; j < lc.Len(); j++ {
				assert.Equal(t, lc.At(i, j), lc.At(j, i))
			}
		}
	})

	t.Run("NoAliasing", func(t *testing.T) {
		lc.Set(0, 1, 42)
		assert.Equal(t, float32(1), m.At(0, 1))
	})
}

func TestAugmentEmptyConedSet(t *testing.T) {
	m := lineMatrix(t, 5)

	sel, err := neighborhood.Select(m, 0, neighborhood.RadiusSpec{Inner: 2, Outer: 2})
	require.NoError(t, err)
	require.Empty(t, sel.Coned)

	lc := Augment(m, sel)
	require.Equal(t, 4, lc.Len()) // ref + 2 kept + cone

	// The cone vertex is fully disconnected.
	cone := 3
	for i := 0; i < cone; i++ {
		assert.Equal(t, model.Inf, lc.At(i, cone))
	}
	assert.Equal(t, float32(0), lc.At(cone, cone))
}

func TestVertices(t *testing.T) {
	m := lineMatrix(t, 6)

	sel, err := neighborhood.Select(m, 2, neighborhood.KNNSpec{InnerK: 2, OuterK: 4})
	require.NoError(t, err)

	verts := Vertices(sel)
	assert.Equal(t, 2, verts[0])
	assert.Len(t, verts, sel.Size())
}
