package cone

import (
	"github.com/hupe1980/conego/model"
	"github.com/hupe1980/conego/neighborhood"
)

// Augment builds the local complex for a selection: the sub-cloud's pairwise
// distances plus one synthetic cone vertex.
//
// Vertex layout of the returned matrix: the reference point at index 0,
// followed by the kept points, the coned points (both in selection order),
// and the cone vertex at the last index.
//
// Cone-edge convention: the cone vertex is linked to each coned point at
// that point's original distance to the reference point, so the cone merges
// with a coned point exactly when the point enters the filtration. Edges
// from the cone to the reference point and to kept points are absent
// (model.Inf). The cone's diagonal entry is zero.
//
// The result is symmetric with zero diagonal and shares no storage with m.
func Augment(m *model.DistanceMatrix, sel *neighborhood.Selection) *model.DistanceMatrix {
	verts := Vertices(sel)
	k := len(verts)

	// NewDistanceMatrix starts with all edges absent, which already covers
	// the cone edges to the reference and kept points.
	out := model.NewDistanceMatrix(k + 1)
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			out.Set(a, b, m.At(verts[a], verts[b]))
		}
	}

	cone := k
	coneStart := 1 + len(sel.Kept)
	for i, d := range sel.ConeDists {
		out.Set(coneStart+i, cone, d)
	}

	return out
}

// Vertices returns the original indices of the selection's points in local
// complex order: reference first, then kept, then coned. The synthetic cone
// vertex has no original index and is not included.
func Vertices(sel *neighborhood.Selection) []int {
	verts := make([]int, 0, sel.Size())
	verts = append(verts, sel.Ref)
	verts = append(verts, sel.Kept...)
	verts = append(verts, sel.Coned...)
	return verts
}
