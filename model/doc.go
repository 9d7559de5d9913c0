// Package model defines core types used throughout Conego.
//
// # Input Types
//
//   - PointCloud: Ordered, immutable sequence of fixed-dimension points
//   - DistanceMatrix: Dense symmetric dissimilarity matrix with zero
//     diagonal; Inf marks absent edges
//
// Analyses accept either a PointCloud (pairwise distances are computed under
// a configured metric) or a precomputed DistanceMatrix, e.g. shortest-path
// distances of a weighted graph.
//
// # Lifecycle
//
// Input data is read-only. Local complexes are derived per reference point
// as fresh DistanceMatrix values (see the cone package) and share no storage
// with the input.
package model
