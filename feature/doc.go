// Package feature converts persistence diagrams into scalar features.
//
// Featurizers are pure functions from a diagram and a set of homology
// dimensions to one scalar per dimension:
//
//   - Entropy: persistence entropy (Shannon entropy of bar lengths)
//   - BarCount: number of bars, optionally thresholded by persistence
//
// Feature rows produced per reference point are assembled into a
// table.FeatureTable by the batch analyzer.
package feature
