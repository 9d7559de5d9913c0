// Package conego computes local homology features of point clouds by
// coning off neighborhood boundaries.
//
// For each reference point of a cloud, conego selects a local neighborhood
// (by radius annulus or nearest-neighbor counts), attaches a synthetic cone
// vertex to the outer shell of that neighborhood, and computes the
// persistent homology of the resulting local complex. Coning off the shell
// turns relative cycles at the reference point into ordinary cycles, so the
// resulting diagram measures the local topology around the point: interior
// points of a d-dimensional region look like S^d, branch points and
// boundary points look different.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	a, _ := conego.NewFromPoints(points, distance.MetricEuclidean,
//	    &neighborhood.KNNSpec{InnerK: 2, OuterK: 8},
//	)
//
//	ft, _ := a.Run(ctx)
//	for i := 0; i < ft.Len(); i++ {
//	    if row, ok := ft.Row(i); ok {
//	        fmt.Println(i, row[1]) // dimension-1 feature per point
//	    }
//	}
//
// Single points can be analyzed without a full run:
//
//	features, _ := a.AnalyzePoint(ctx, 42)
//
// # Persistence and storage
//
// Feature tables can be persisted as compressed snapshots through the
// blobstore abstraction (in-memory, local filesystem, S3, MinIO):
//
//	store, _ := blobstore.NewLocalStore("./data")
//	ft, _ := a.Snapshot(ctx, store, "features.ctab")
//
// # Key Features
//
//   - Radius (annulus) and k-nearest-neighbor neighborhood specs
//   - Deterministic selection with index-order tie-breaking
//   - Built-in flag-complex persistence engine for dimensions 0 and 1
//   - Pluggable engines and featurizers (persistence entropy, bar counts)
//   - Bounded concurrent batch runs with partial-failure reporting
//   - Snapshot persistence (zstd/lz4) to local, S3 or MinIO storage
package conego
