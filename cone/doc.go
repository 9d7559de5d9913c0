// Package cone augments a local neighborhood with a synthetic cone vertex.
//
// Coning off converts boundary effects of a truncated neighborhood into
// measurable topological features: linking the outer ring of a neighborhood
// to one extra vertex turns, for example, a line segment through the
// reference point into a loop. Persistent homology of the augmented complex
// then reflects the local dimensionality and branching structure around the
// reference point.
//
// The cone vertex is linked to each coned point at that point's original
// distance to the reference point; kept points and the reference point get
// no cone edge. See Augment for the exact matrix layout.
package cone
