package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records load metrics for caches.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLoad records one load with its duration and error status.
	RecordLoad(ctx context.Context, meta CacheMeta, duration time.Duration, err error)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates load instruments on the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"cache.load.total",
		metric.WithDescription("Total number of cache loads"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"cache.load.errors",
		metric.WithDescription("Total number of failed cache loads"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"cache.load.duration_ms",
		metric.WithDescription("Cache load duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordLoad(ctx context.Context, meta CacheMeta, duration time.Duration, err error) {
	opt := metric.WithAttributeSet(cacheAttributes(meta))

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

func cacheAttributes(meta CacheMeta) attribute.Set {
	attrs := []attribute.KeyValue{
		attribute.String("cache.id", meta.CacheID()),
		attribute.String("cache.name", meta.Name),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("cache.namespace", meta.Namespace))
	}
	return attribute.NewSet(attrs...)
}

type noopMetrics struct{}

func (m *noopMetrics) RecordLoad(ctx context.Context, meta CacheMeta, duration time.Duration, err error) {
}
