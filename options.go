package addrtrie

import (
	"log/slog"

	"github.com/hupe1980/addrtrie/match"
)

type options struct {
	cacheCapacity    int
	params           match.Params
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Resolver behavior.
type Option func(*options)

// WithCacheCapacity configures how many decoded tries the resolver's
// LRU cache retains. Values below 1 fall back to the default capacity.
//
// Each cached trie is an independently decoded in-memory structure, so
// the right capacity depends on how many distinct blobs a worker cycles
// through and how large they are.
func WithCacheCapacity(capacity int) Option {
	return func(o *options) {
		o.cacheCapacity = capacity
	}
}

// WithParams configures the matching parameters used for all lookups.
//
// Example:
//
//	p := match.DefaultParams()
//	p.MaxTrailingTokensIgnored = 4
//	r := addrtrie.NewResolver(addrtrie.WithParams(p))
func WithParams(p match.Params) Option {
	return func(o *options) {
		o.params = p
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &addrtrie.BasicMetricsCollector{}
//	r := addrtrie.NewResolver(addrtrie.WithMetricsCollector(metrics))
//	// ... use r ...
//	stats := metrics.GetStats()
//	fmt.Printf("Resolves: %d, Avg latency: %dns\n", stats.ResolveCount, stats.ResolveAvgNanos)
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
// Example with JSON logging:
//
//	logger := addrtrie.NewJSONLogger(slog.LevelInfo)
//	r := addrtrie.NewResolver(addrtrie.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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
		params:           match.DefaultParams(),
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
