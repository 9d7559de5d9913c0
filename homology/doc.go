// Package homology computes persistent homology of dissimilarity matrices.
//
// The Engine interface is the seam for persistence computation: it consumes
// a dissimilarity matrix whose Inf entries mark absent edges and returns,
// per dimension, the birth/death pairs of the clique (flag) complex
// filtration.
//
// FlagEngine is the built-in reference implementation covering dimensions 0
// and 1, which is what local-homology analysis of point clouds needs:
// dimension 0 counts local components, dimension 1 counts independent loops
// created by coning off a neighborhood boundary. External engines (bindings
// to dedicated persistence software) can be plugged in wherever an Engine is
// accepted.
package homology
