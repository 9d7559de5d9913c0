// Package neighborhood partitions a point cloud around a reference point
// into kept, coned and discarded sets.
//
// Two spec variants are supported:
//
//   - RadiusSpec{Inner, Outer}: bounds compare raw metric distance.
//   - KNNSpec{InnerK, OuterK}: bounds compare rank order of distance, with
//     ties broken by original point index.
//
// Kept points (inside the inner bound) retain their original pairwise
// distances; coned points (between the bounds) are scheduled for cone-point
// augmentation; discarded points are excluded from the local complex.
//
// # Determinism
//
// For identical input, Select always produces the same partition and the
// same ordering within each set: candidates are sorted by distance with
// original index as the tie-breaker.
package neighborhood
