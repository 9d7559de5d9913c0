package conego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    pointCounter   prometheus.Counter
//	    pointHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordPoint(duration time.Duration, err error) {
//	    p.pointCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordPoint is called after each per-point analysis.
	// duration is the total time taken, err is nil if successful.
	RecordPoint(duration time.Duration, err error)

	// RecordRun is called after each batch run.
	// count is the number of points attempted, failed is the number that
	// failed, duration is the total time taken.
	RecordRun(count, failed int, duration time.Duration)

	// RecordSnapshot is called after each snapshot save.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPoint(time.Duration, error)    {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration)   {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PointCount      atomic.Int64
	PointErrors     atomic.Int64
	PointTotalNanos atomic.Int64
	RunCount        atomic.Int64
	RunPoints       atomic.Int64
	RunFailed       atomic.Int64
	SnapshotCount   atomic.Int64
	SnapshotErrors  atomic.Int64
}

// RecordPoint implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPoint(duration time.Duration, err error) {
	b.PointCount.Add(1)
	b.PointTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PointErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(count, failed int, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunPoints.Add(int64(count))
	b.RunFailed.Add(int64(failed))
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		PointCount:     b.PointCount.Load(),
		PointErrors:    b.PointErrors.Load(),
		PointAvgNanos:  b.getAvgPointNanos(),
		RunCount:       b.RunCount.Load(),
		RunPoints:      b.RunPoints.Load(),
		RunFailed:      b.RunFailed.Load(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgPointNanos() int64 {
	count := b.PointCount.Load()
	if count == 0 {
		return 0
	}
	return b.PointTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	PointCount     int64
	PointErrors    int64
	PointAvgNanos  int64
	RunCount       int64
	RunPoints      int64
	RunFailed      int64
	SnapshotCount  int64
	SnapshotErrors int64
}
