package conego

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/conego/blobstore"
	"github.com/hupe1980/conego/cone"
	"github.com/hupe1980/conego/distance"
	"github.com/hupe1980/conego/model"
	"github.com/hupe1980/conego/neighborhood"
	"github.com/hupe1980/conego/table"
)

// Analyzer computes local homology features for the points of a cloud.
//
// For each reference point it selects a neighborhood, cones off the outer
// shell, computes the persistence diagram of the resulting local complex
// and summarizes it into per-dimension features. The Analyzer itself is
// immutable after construction and safe for concurrent use.
type Analyzer struct {
	matrix *model.DistanceMatrix
	spec   neighborhood.Spec
	opts   options
	maxDim int
}

// New creates an Analyzer over a precomputed distance matrix.
//
// The matrix is validated once up front (symmetry, zero diagonal, no NaN).
// The spec is validated against the matrix size so that per-point calls
// cannot fail on malformed configuration later.
func New(m *model.DistanceMatrix, spec neighborhood.Spec, optFns ...Option) (*Analyzer, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil distance matrix", ErrInvalidSpec)
	}
	if spec == nil {
		return nil, fmt.Errorf("%w: nil neighborhood spec", ErrInvalidSpec)
	}

	if err := m.Validate(); err != nil {
		return nil, translateError(err)
	}
	if err := spec.Validate(m.Len()); err != nil {
		return nil, translateError(err)
	}

	opts := applyOptions(optFns)

	maxDim := 0
	for _, d := range opts.dims {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative homology dimension %d", ErrDimensionOutOfRange, d)
		}
		if d > maxDim {
			maxDim = d
		}
	}

	return &Analyzer{
		matrix: m,
		spec:   spec,
		opts:   opts,
		maxDim: maxDim,
	}, nil
}

// NewFromPoints creates an Analyzer from raw point coordinates, computing
// the pairwise distance matrix with the given metric.
func NewFromPoints(points [][]float32, metric distance.Metric, spec neighborhood.Spec, optFns ...Option) (*Analyzer, error) {
	cloud, err := model.NewPointCloud(points)
	if err != nil {
		return nil, translateError(err)
	}

	m, err := cloud.DistanceMatrix(metric)
	if err != nil {
		return nil, translateError(err)
	}

	return New(m, spec, optFns...)
}

// Len returns the number of points in the analyzed cloud.
func (a *Analyzer) Len() int {
	return a.matrix.Len()
}

// AnalyzePoint computes the features for a single reference point.
func (a *Analyzer) AnalyzePoint(ctx context.Context, ref int) (map[int]float32, error) {
	start := time.Now()
	features, size, err := a.analyzePoint(ctx, ref)
	duration := time.Since(start)

	a.opts.metricsCollector.RecordPoint(duration, err)
	a.opts.logger.LogAnalyzePoint(ctx, ref, size, err)

	return features, err
}

// analyzePoint is the shared per-point pipeline: select, cone off, reduce,
// featurize. It returns the local complex size for logging.
//
// A configured controller bounds the number of points in flight across every
// run and analyzer sharing it, on top of the per-run errgroup limit.
func (a *Analyzer) analyzePoint(ctx context.Context, ref int) (map[int]float32, int, error) {
	if err := a.opts.controller.AcquireWorker(ctx); err != nil {
		return nil, 0, err
	}
	defer a.opts.controller.ReleaseWorker()

	sel, err := neighborhood.Select(a.matrix, ref, a.spec)
	if err != nil {
		return nil, 0, translateError(err)
	}

	// The dense local matrix dominates per-point memory.
	size := sel.Size() + 1
	memBytes := int64(size) * int64(size) * 4
	if err := a.opts.controller.AcquireMemory(ctx, memBytes); err != nil {
		return nil, size, err
	}
	defer a.opts.controller.ReleaseMemory(memBytes)

	local := cone.Augment(a.matrix, sel)

	dgm, err := a.opts.engine.Persistence(ctx, local, a.maxDim)
	if err != nil {
		return nil, size, translateError(err)
	}

	features, err := a.opts.featurizer.Featurize(dgm, a.opts.dims)
	if err != nil {
		return nil, size, translateError(err)
	}

	return features, size, nil
}

// Run analyzes every point of the cloud and returns the feature table.
//
// Points are processed concurrently by a bounded worker pool. By default a
// failing point only marks its own row in the table and the run continues;
// with WithFailFast the first error cancels the remaining work and is
// returned. A canceled context always aborts the run.
func (a *Analyzer) Run(ctx context.Context) (*table.FeatureTable, error) {
	start := time.Now()
	n := a.matrix.Len()
	ft := table.New(n, a.opts.dims)

	workers := a.opts.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			pointStart := time.Now()
			features, size, err := a.analyzePoint(gctx, i)
			a.opts.metricsCollector.RecordPoint(time.Since(pointStart), err)
			a.opts.logger.LogAnalyzePoint(gctx, i, size, err)

			if err != nil {
				// Context errors abort the run even without fail-fast:
				// a canceled worker says nothing about the point itself.
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				if a.opts.failFast {
					return fmt.Errorf("point %d: %w", i, err)
				}
				ft.SetRowError(i, err)
				return nil
			}

			ft.SetRow(i, features)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	failed := ft.NumFailed()
	a.opts.metricsCollector.RecordRun(n, failed, time.Since(start))
	a.opts.logger.LogRun(ctx, n, failed)

	if err != nil {
		return nil, err
	}
	return ft, nil
}

// Snapshot runs the full analysis and persists the resulting table to the
// blob store under the given name.
func (a *Analyzer) Snapshot(ctx context.Context, store blobstore.BlobStore, name string) (*table.FeatureTable, error) {
	ft, err := a.Run(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	err = table.Save(ctx, store, name, ft, table.WithController(a.opts.controller))
	a.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	a.opts.logger.LogSnapshot(ctx, name, err)
	if err != nil {
		return nil, err
	}

	return ft, nil
}
