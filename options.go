package conego

import (
	"log/slog"

	"github.com/hupe1980/conego/feature"
	"github.com/hupe1980/conego/homology"
	"github.com/hupe1980/conego/resource"
)

type options struct {
	workers          int
	dims             []int
	failFast         bool
	engine           homology.Engine
	featurizer       feature.Featurizer
	controller       *resource.Controller
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Analyzer behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. engine-specific constructor variants).
type Option func(*options)

// WithWorkers configures the number of concurrent per-point workers for
// batch runs.
//
// Each worker builds one local complex at a time, so memory scales with
// workers times the largest neighborhood. If workers <= 0, runtime.NumCPU()
// is used.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithDimensions configures the homology dimensions to featurize.
// Defaults to [0, 1].
func WithDimensions(dims ...int) Option {
	return func(o *options) {
		if len(dims) > 0 {
			o.dims = dims
		}
	}
}

// WithFailFast makes a batch run abort on the first per-point error
// instead of recording it and continuing.
//
// By default a failed point only marks its own row; the run completes and
// the table reports the failures.
func WithFailFast() Option {
	return func(o *options) {
		o.failFast = true
	}
}

// WithEngine configures the persistence engine used to compute diagrams.
//
// If nil is passed, the built-in flag-complex engine (dimensions 0 and 1)
// is used. External engines can be plugged in to support higher dimensions
// or faster reductions.
func WithEngine(e homology.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithFeaturizer configures how diagrams are summarized into features.
//
// If nil is passed, persistence entropy is used.
func WithFeaturizer(f feature.Featurizer) Option {
	return func(o *options) {
		o.featurizer = f
	}
}

// WithResourceController configures shared resource limits (memory budget,
// concurrent analysis workers, IO throughput) for batch runs. The same
// controller may back several analyzers to bound their combined usage.
// Pass nil to disable limits.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &conego.BasicMetricsCollector{}
//	a, _ := conego.New(m, spec, conego.WithMetricsCollector(metrics))
//	// ... run ...
//	stats := metrics.GetStats()
//	fmt.Printf("Points: %d, Avg latency: %dns\n", stats.PointCount, stats.PointAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := conego.NewJSONLogger(slog.LevelInfo)
//	a, _ := conego.New(m, spec, conego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		dims:             []int{0, 1},
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.engine == nil {
		o.engine = homology.NewFlagEngine()
	}
	if o.featurizer == nil {
		o.featurizer = feature.NewEntropy()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
