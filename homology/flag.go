package homology

import (
	"context"
	"sort"

	"github.com/hupe1980/conego/internal/math32"
	"github.com/hupe1980/conego/model"
)

// checkInterval is the number of reduction steps between context checks.
const checkInterval = 1024

// FlagEngine is the reference persistence engine. It computes persistent
// homology of the Vietoris-Rips (flag) complex in dimensions 0 and 1 by
// standard boundary-matrix reduction over Z/2.
//
// Conventions:
//   - Vertices are born at their diagonal entry (zero for local complexes).
//   - An edge exists iff its matrix entry is finite; its birth is the entry.
//   - A triangle exists iff all three edges exist; its birth is the maximum
//     edge weight.
//   - Dimension 0 emits one bar per vertex (the elder rule decides deaths);
//     dimension 1 omits zero-persistence pairs.
//
// FlagEngine is stateless and safe for concurrent use. Runtime is cubic in
// the vertex count, which is fine for local neighborhoods; plug a dedicated
// engine via the Engine interface for large complexes or higher dimensions.
type FlagEngine struct{}

// NewFlagEngine creates a reference flag-complex persistence engine.
func NewFlagEngine() *FlagEngine {
	return &FlagEngine{}
}

type edge struct {
	w    float32
	u, v int
}

// Persistence implements Engine.
func (e *FlagEngine) Persistence(ctx context.Context, m *model.DistanceMatrix, maxDim int) (Diagram, error) {
	if maxDim < 0 || maxDim > 1 {
		return nil, &ErrUnsupportedDimension{Requested: maxDim, Max: 1}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := m.Len()
	edges := collectEdges(m)

	dgm := Diagram{0: e.reduceDim0(n, m, edges)}
	if maxDim >= 1 {
		pairs, err := e.reduceDim1(ctx, m, edges)
		if err != nil {
			return nil, err
		}
		dgm[1] = pairs
	}
	return dgm, nil
}

// collectEdges gathers all finite edges sorted by (weight, u, v) ascending.
// The sort order is the edge filtration order.
func collectEdges(m *model.DistanceMatrix) []edge {
	n := m.Len()
	edges := make([]edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w := m.At(i, j); !math32.IsInf(w) {
				edges = append(edges, edge{w: w, u: i, v: j})
			}
		}
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].w != edges[b].w {
			return edges[a].w < edges[b].w
		}
		if edges[a].u != edges[b].u {
			return edges[a].u < edges[b].u
		}
		return edges[a].v < edges[b].v
	})
	return edges
}

// unionFind is a disjoint-set structure with path compression and union by
// rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(u int) int {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

func (uf *unionFind) union(u, v int) {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return
	}
	if uf.rank[ru] < uf.rank[rv] {
		ru, rv = rv, ru
	}
	uf.parent[rv] = ru
	if uf.rank[ru] == uf.rank[rv] {
		uf.rank[ru]++
	}
}

// reduceDim0 computes the dimension-0 barcode: every vertex contributes a
// bar born at its diagonal entry; each merging edge kills one bar at its
// weight; surviving components are essential.
func (e *FlagEngine) reduceDim0(n int, m *model.DistanceMatrix, edges []edge) []Pair {
	uf := newUnionFind(n)
	pairs := make([]Pair, 0, n)

	for _, ed := range edges {
		if uf.find(ed.u) == uf.find(ed.v) {
			continue
		}
		uf.union(ed.u, ed.v)
		pairs = append(pairs, Pair{Birth: 0, Death: ed.w})
	}

	// Essential bars, one per surviving component, in ascending root order.
	for v := 0; v < n; v++ {
		if uf.find(v) == v {
			pairs = append(pairs, Pair{Birth: m.At(v, v), Death: model.Inf})
		}
	}
	return pairs
}

// reduceDim1 computes the dimension-1 barcode. Creator edges (those that
// close a cycle rather than merging components) are paired against triangle
// columns via standard persistence reduction; unpaired creators are
// essential. Zero-persistence pairs are omitted.
func (e *FlagEngine) reduceDim1(ctx context.Context, m *model.DistanceMatrix, edges []edge) ([]Pair, error) {
	// Identify creator edges by replaying the dimension-0 merge sequence.
	uf := newUnionFind(m.Len())
	creator := make([]bool, len(edges))
	for i, ed := range edges {
		if uf.find(ed.u) == uf.find(ed.v) {
			creator[i] = true
			continue
		}
		uf.union(ed.u, ed.v)
	}

	// Edge (u,v) -> filtration index.
	edgeIdx := make(map[[2]int]int, len(edges))
	for i, ed := range edges {
		edgeIdx[[2]int{ed.u, ed.v}] = i
	}

	triangles := collectTriangles(m, edgeIdx)

	// Standard reduction: process triangle columns in filtration order,
	// cancelling against previously reduced columns with the same low.
	lowToCol := make(map[int][]int, len(triangles))
	paired := make(map[int]struct{}, len(triangles))
	pairs := make([]Pair, 0)

	steps := 0
	for _, tri := range triangles {
		col := tri.boundary[:]
		for len(col) > 0 {
			low := col[len(col)-1]
			other, ok := lowToCol[low]
			if !ok {
				break
			}
			col = xorColumns(col, other)

			steps++
			if steps%checkInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
		}
		if len(col) == 0 {
			continue
		}

		low := col[len(col)-1]
		lowToCol[low] = col
		paired[low] = struct{}{}

		if birth := edges[low].w; tri.birth > birth {
			pairs = append(pairs, Pair{Birth: birth, Death: tri.birth})
		}
	}

	// Unpaired creator edges are essential cycles.
	for i, ed := range edges {
		if !creator[i] {
			continue
		}
		if _, ok := paired[i]; !ok {
			pairs = append(pairs, Pair{Birth: ed.w, Death: model.Inf})
		}
	}
	return pairs, nil
}

type triangle struct {
	birth    float32
	boundary [3]int // edge filtration indices, ascending
}

// collectTriangles enumerates all flag 2-simplices sorted in filtration
// order: a triangle is born with its latest edge, so ordering by boundary
// indices (descending significance) is consistent with birth order.
func collectTriangles(m *model.DistanceMatrix, edgeIdx map[[2]int]int) []triangle {
	n := m.Len()
	tris := make([]triangle, 0)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math32.IsInf(m.At(i, j)) {
				continue
			}
			for k := j + 1; k < n; k++ {
				if math32.IsInf(m.At(i, k)) || math32.IsInf(m.At(j, k)) {
					continue
				}
				b := [3]int{
					edgeIdx[[2]int{i, j}],
					edgeIdx[[2]int{i, k}],
					edgeIdx[[2]int{j, k}],
				}
				sort.Ints(b[:])

				w := m.At(i, j)
				if v := m.At(i, k); v > w {
					w = v
				}
				if v := m.At(j, k); v > w {
					w = v
				}
				tris = append(tris, triangle{birth: w, boundary: b})
			}
		}
	}

	sort.Slice(tris, func(a, b int) bool {
		ta, tb := tris[a].boundary, tris[b].boundary
		if ta[2] != tb[2] {
			return ta[2] < tb[2]
		}
		if ta[1] != tb[1] {
			return ta[1] < tb[1]
		}
		return ta[0] < tb[0]
	})
	return tris
}

// xorColumns returns the symmetric difference of two ascending index slices.
func xorColumns(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
