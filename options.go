package hashgeo

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	precompute       bool
	workers          int
}

// Option configures HashedGeometry construction and loading.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hashgeo.BasicMetricsCollector{}
//	geo, _ := hashgeo.New(gm, hashgeo.WithMetricsCollector(metrics))
//	// ... use geo ...
//	stats := metrics.GetStats()
//	fmt.Printf("Builds: %d, Avg latency: %dns\n", stats.BuildCount, stats.BuildAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
//	logger := hashgeo.NewJSONLogger(slog.LevelInfo)
//	geo, _ := hashgeo.New(gm, hashgeo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithPrecomputedDistances fills the full pairwise distance matrix at
// construction, using up to workers goroutines (workers <= 0 means
// GOMAXPROCS). The matrix costs N*(N+1)/2 float64s, about 120MB for IC86.
//
// Without it, distances are computed from the position table on each call.
// Both modes return the same values.
func WithPrecomputedDistances(workers int) Option {
	return func(o *options) {
		o.precompute = true
		o.workers = workers
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
