package conego

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/conego/blobstore"
	"github.com/hupe1980/conego/distance"
	"github.com/hupe1980/conego/feature"
	"github.com/hupe1980/conego/homology"
	"github.com/hupe1980/conego/model"
	"github.com/hupe1980/conego/neighborhood"
	"github.com/hupe1980/conego/resource"
	"github.com/hupe1980/conego/table"
	"github.com/hupe1980/conego/util"
)

func TestNew_Validation(t *testing.T) {
	line := util.LinePoints(10, 1)

	t.Run("NilSpec", func(t *testing.T) {
		_, err := NewFromPoints(line, distance.MetricEuclidean, nil)
		assert.ErrorIs(t, err, ErrInvalidSpec)
	})

	t.Run("InvalidBounds", func(t *testing.T) {
		_, err := NewFromPoints(line, distance.MetricEuclidean, neighborhood.RadiusSpec{Inner: 3, Outer: 1})
		assert.ErrorIs(t, err, ErrInvalidSpec)
	})

	t.Run("CloudTooSmall", func(t *testing.T) {
		_, err := NewFromPoints(util.LinePoints(3, 1), distance.MetricEuclidean, neighborhood.KNNSpec{InnerK: 1, OuterK: 7})
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("SinglePoint", func(t *testing.T) {
		_, err := NewFromPoints([][]float32{{0, 0}}, distance.MetricEuclidean, neighborhood.KNNSpec{InnerK: 1, OuterK: 1})
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("NonFiniteCoords", func(t *testing.T) {
		nan := float32(0)
		nan = nan / nan
		_, err := NewFromPoints([][]float32{{0, 0}, {nan, 1}}, distance.MetricEuclidean, neighborhood.KNNSpec{InnerK: 1, OuterK: 1})
		assert.ErrorIs(t, err, ErrNonFiniteInput)
	})

	t.Run("NegativeDimension", func(t *testing.T) {
		_, err := NewFromPoints(line, distance.MetricEuclidean, neighborhood.KNNSpec{InnerK: 1, OuterK: 7}, WithDimensions(-1))
		assert.ErrorIs(t, err, ErrDimensionOutOfRange)
	})

	t.Run("CosineDuplicatePoints", func(t *testing.T) {
		// Duplicate points under cosine rounded to a tiny negative distance
		// before clamping, and matrix validation rejected the cloud.
		points := [][]float32{{1, 1}, {1, 1}, {1, 0}, {0, 1}, {2, 1}, {1, 2}}
		_, err := NewFromPoints(points, distance.MetricCosine, neighborhood.KNNSpec{InnerK: 1, OuterK: 4})
		require.NoError(t, err)
	})
}

// A line of evenly spaced points: interior points carry exactly one
// nontrivial dimension-1 class, endpoints none.
func TestAnalyzer_Line(t *testing.T) {
	a, err := NewFromPoints(util.LinePoints(10, 1), distance.MetricEuclidean,
		neighborhood.KNNSpec{InnerK: 1, OuterK: 7},
		WithFeaturizer(feature.NewBarCount()),
		WithDimensions(1),
	)
	require.NoError(t, err)

	ft, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, ft.NumFailed())

	// Nearest-neighbor ties resolve toward the lower index, so point 1
	// keeps point 0 and cones only rightward, while point 8 keeps point 7
	// and still cones point 9.
	want := []float32{0, 0, 1, 1, 1, 1, 1, 1, 1, 0}
	for i, w := range want {
		row, ok := ft.Row(i)
		require.True(t, ok, "row %d", i)
		assert.Equal(t, w, row[1], "dimension-1 count at point %d", i)
	}
}

// A cross-shaped cloud: the branch point carries three dimension-1
// classes, mid-arm points one, arm tips none.
func TestAnalyzer_Cross(t *testing.T) {
	a, err := NewFromPoints(util.CrossPoints(2, 1), distance.MetricEuclidean,
		neighborhood.RadiusSpec{Inner: 1, Outer: 2},
		WithFeaturizer(feature.NewBarCount()),
		WithDimensions(1),
	)
	require.NoError(t, err)

	ft, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, ft.NumFailed())

	center, ok := ft.Row(0)
	require.True(t, ok)
	assert.Equal(t, float32(3), center[1], "branch point")

	for i := 1; i <= 4; i++ {
		row, ok := ft.Row(i)
		require.True(t, ok)
		assert.Equal(t, float32(1), row[1], "mid-arm point %d", i)
	}
	for i := 5; i <= 8; i++ {
		row, ok := ft.Row(i)
		require.True(t, ok)
		assert.Equal(t, float32(0), row[1], "arm tip %d", i)
	}
}

// With inner == outer nothing is coned: the cone vertex stays isolated and
// the dimension-0 bar count equals the local vertex count.
func TestAnalyzer_DegenerateAnnulus(t *testing.T) {
	a, err := NewFromPoints(util.LinePoints(10, 1), distance.MetricEuclidean,
		neighborhood.RadiusSpec{Inner: 2, Outer: 2},
		WithFeaturizer(feature.NewBarCount()),
		WithDimensions(0),
	)
	require.NoError(t, err)

	row, err := a.AnalyzePoint(context.Background(), 4)
	require.NoError(t, err)

	// ref + 4 kept + cone
	assert.Equal(t, float32(6), row[0])
}

func TestAnalyzer_AnalyzePoint(t *testing.T) {
	a, err := NewFromPoints(util.LinePoints(10, 1), distance.MetricEuclidean,
		neighborhood.KNNSpec{InnerK: 1, OuterK: 7},
		WithFeaturizer(feature.NewBarCount()),
	)
	require.NoError(t, err)

	row, err := a.AnalyzePoint(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, float32(1), row[1])

	_, err = a.AnalyzePoint(context.Background(), 99)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	rng := util.NewRNG(4711)
	points := rng.NoisyCircle(64, 5, 0.1)

	run := func(workers int) *table.FeatureTable {
		a, err := NewFromPoints(points, distance.MetricEuclidean,
			neighborhood.KNNSpec{InnerK: 3, OuterK: 12},
			WithWorkers(workers),
		)
		require.NoError(t, err)

		ft, err := a.Run(context.Background())
		require.NoError(t, err)
		return ft
	}

	sequential := run(1)
	parallel := run(8)
	repeat := run(8)

	for i := 0; i < sequential.Len(); i++ {
		seqRow, seqOK := sequential.Row(i)
		parRow, parOK := parallel.Row(i)
		repRow, repOK := repeat.Row(i)

		assert.Equal(t, seqOK, parOK, "row %d presence", i)
		assert.Equal(t, seqRow, parRow, "row %d sequential vs parallel", i)
		assert.Equal(t, parOK, repOK, "row %d presence", i)
		assert.Equal(t, parRow, repRow, "row %d repeated run", i)
	}
}

// trackingEngine wraps another engine and records the peak number of
// concurrent Persistence calls.
type trackingEngine struct {
	inner   homology.Engine
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (e *trackingEngine) Persistence(ctx context.Context, m *model.DistanceMatrix, maxDim int) (homology.Diagram, error) {
	cur := e.active.Add(1)
	defer e.active.Add(-1)
	for {
		seen := e.maxSeen.Load()
		if cur <= seen || e.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	return e.inner.Persistence(ctx, m, maxDim)
}

// The controller's worker limit bounds in-flight points even when the
// per-run worker count is higher.
func TestAnalyzer_WorkerLimit(t *testing.T) {
	rng := util.NewRNG(42)
	points := rng.NoisyCircle(48, 5, 0.1)

	engine := &trackingEngine{inner: homology.NewFlagEngine()}

	a, err := NewFromPoints(points, distance.MetricEuclidean,
		neighborhood.KNNSpec{InnerK: 3, OuterK: 12},
		WithEngine(engine),
		WithWorkers(8),
		WithResourceController(resource.NewController(resource.Config{MaxAnalysisWorkers: 1})),
	)
	require.NoError(t, err)

	ft, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, ft.NumFailed())

	assert.Equal(t, int32(1), engine.maxSeen.Load())
}

// isolatedCloud is a short line plus one far-away point that no annulus
// around it can reach.
func isolatedCloud() [][]float32 {
	points := util.LinePoints(5, 1)
	return append(points, []float32{100, 0})
}

func TestAnalyzer_PartialFailure(t *testing.T) {
	a, err := NewFromPoints(isolatedCloud(), distance.MetricEuclidean,
		neighborhood.RadiusSpec{Inner: 1, Outer: 2},
	)
	require.NoError(t, err)

	ft, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ft.NumFailed())
	assert.True(t, ft.FailedRows().Contains(5))
	require.Error(t, ft.RowError(5))

	for i := 0; i < 5; i++ {
		_, ok := ft.Row(i)
		assert.True(t, ok, "row %d", i)
	}
}

func TestAnalyzer_FailFast(t *testing.T) {
	a, err := NewFromPoints(isolatedCloud(), distance.MetricEuclidean,
		neighborhood.RadiusSpec{Inner: 1, Outer: 2},
		WithFailFast(),
	)
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestAnalyzer_CanceledContext(t *testing.T) {
	a, err := NewFromPoints(util.LinePoints(10, 1), distance.MetricEuclidean,
		neighborhood.KNNSpec{InnerK: 1, OuterK: 7},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_Snapshot(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	a, err := NewFromPoints(util.LinePoints(10, 1), distance.MetricEuclidean,
		neighborhood.KNNSpec{InnerK: 1, OuterK: 7},
		WithFeaturizer(feature.NewBarCount()),
	)
	require.NoError(t, err)

	ft, err := a.Snapshot(ctx, store, "line.ctab")
	require.NoError(t, err)

	loaded, err := table.Load(ctx, store, "line.ctab")
	require.NoError(t, err)

	require.Equal(t, ft.Len(), loaded.Len())
	for i := 0; i < ft.Len(); i++ {
		wantRow, wantOK := ft.Row(i)
		gotRow, gotOK := loaded.Row(i)
		assert.Equal(t, wantOK, gotOK)
		assert.Equal(t, wantRow, gotRow)
	}
}

func TestAnalyzer_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	a, err := NewFromPoints(isolatedCloud(), distance.MetricEuclidean,
		neighborhood.RadiusSpec{Inner: 1, Outer: 2},
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(6), stats.PointCount)
	assert.Equal(t, int64(1), stats.PointErrors)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(6), stats.RunPoints)
	assert.Equal(t, int64(1), stats.RunFailed)
}
