// Package table holds batch analysis results and their persistence.
//
// A FeatureTable has one row per reference point of the analyzed cloud and
// records either the point's features or its failure reason. Tables can be
// persisted as compressed, self-describing snapshots through the blobstore
// abstraction.
package table
