package addrtrie

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
//	    resolveCounter   prometheus.Counter
//	    resolveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordResolve(status string, duration time.Duration) {
//	    p.resolveCounter.Inc()
//	    // ... record status, duration, etc.
//	}
type MetricsCollector interface {
	// RecordResolve is called after each Find, Classify or Candidates call.
	// status is the outcome status string (e.g. "EXACT", "NO_PATH").
	RecordResolve(status string, duration time.Duration)

	// RecordDecode is called after each blob decode attempt.
	// cached reports whether the decode was served from the cache,
	// err is nil if successful.
	RecordDecode(cached bool, duration time.Duration, err error)

	// RecordPeel is called after each Peel call.
	// removed is the number of trailing tokens dropped.
	RecordPeel(removed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordResolve(string, time.Duration)     {}
func (NoopMetricsCollector) RecordDecode(bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordPeel(int, time.Duration)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ResolveCount      atomic.Int64
	ResolveExact      atomic.Int64
	ResolveTotalNanos atomic.Int64
	DecodeCount       atomic.Int64
	DecodeHits        atomic.Int64
	DecodeErrors      atomic.Int64
	PeelCount         atomic.Int64
	PeelRemoved       atomic.Int64
}

// RecordResolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResolve(status string, duration time.Duration) {
	b.ResolveCount.Add(1)
	b.ResolveTotalNanos.Add(duration.Nanoseconds())
	if status == "EXACT" {
		b.ResolveExact.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(cached bool, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	if cached {
		b.DecodeHits.Add(1)
	}
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// RecordPeel implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPeel(removed int, duration time.Duration) {
	b.PeelCount.Add(1)
	b.PeelRemoved.Add(int64(removed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ResolveCount:    b.ResolveCount.Load(),
		ResolveExact:    b.ResolveExact.Load(),
		ResolveAvgNanos: b.getAvgResolveNanos(),
		DecodeCount:     b.DecodeCount.Load(),
		DecodeHits:      b.DecodeHits.Load(),
		DecodeErrors:    b.DecodeErrors.Load(),
		PeelCount:       b.PeelCount.Load(),
		PeelRemoved:     b.PeelRemoved.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgResolveNanos() int64 {
	count := b.ResolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.ResolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ResolveCount    int64
	ResolveExact    int64
	ResolveAvgNanos int64
	DecodeCount     int64
	DecodeHits      int64
	DecodeErrors    int64
	PeelCount       int64
	PeelRemoved     int64
}
