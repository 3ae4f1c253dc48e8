package observe

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// StatsSource exposes the counters of an instrumented cache.
// *cache.InstrumentingCache satisfies it.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Reads must not reset or otherwise disturb the counters.
type StatsSource interface {
	Requests() int64
	Hits() int64
	Size() int
	WeightedSize() int64
	Capacity() int64
	IsCapacitySetManually() bool
}

// HitRatio returns the lifetime hit ratio of src, or 0 with no requests.
func HitRatio(src StatsSource) float64 {
	requests := src.Requests()
	if requests == 0 {
		return 0
	}
	return float64(src.Hits()) / float64(requests)
}

// RegisterCacheMetrics registers observable instruments that read src at
// collection time. Call Unregister on the result to stop reporting.
//
// Requests and hits are reported as cumulative counters and drop back to
// zero when the cache is cleared.
func RegisterCacheMetrics(meter metric.Meter, meta CacheMeta, src StatsSource) (metric.Registration, error) {
	if src == nil {
		return nil, ErrNilStatsSource
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	requests, err := meter.Int64ObservableCounter(
		"cache.requests",
		metric.WithDescription("Number of counted cache reads"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	hits, err := meter.Int64ObservableCounter(
		"cache.hits",
		metric.WithDescription("Number of cache reads that found a value"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	size, err := meter.Int64ObservableGauge(
		"cache.size",
		metric.WithDescription("Number of entries in the cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	weighted, err := meter.Int64ObservableGauge(
		"cache.weighted_size",
		metric.WithDescription("Summed weight of all cache entries"),
	)
	if err != nil {
		return nil, err
	}

	capacity, err := meter.Int64ObservableGauge(
		"cache.capacity",
		metric.WithDescription("Weighted capacity of the cache"),
	)
	if err != nil {
		return nil, err
	}

	manual, err := meter.Int64ObservableGauge(
		"cache.capacity_manual",
		metric.WithDescription("1 if the capacity was set by an operator, else 0"),
	)
	if err != nil {
		return nil, err
	}

	ratio, err := meter.Float64ObservableGauge(
		"cache.hit_ratio",
		metric.WithDescription("Lifetime ratio of hits to requests"),
	)
	if err != nil {
		return nil, err
	}

	opt := metric.WithAttributeSet(cacheAttributes(meta))

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(requests, src.Requests(), opt)
		o.ObserveInt64(hits, src.Hits(), opt)
		o.ObserveInt64(size, int64(src.Size()), opt)
		o.ObserveInt64(weighted, src.WeightedSize(), opt)
		o.ObserveInt64(capacity, src.Capacity(), opt)
		o.ObserveInt64(manual, boolToInt64(src.IsCapacitySetManually()), opt)
		o.ObserveFloat64(ratio, HitRatio(src), opt)
		return nil
	}, requests, hits, size, weighted, capacity, manual, ratio)
}

// Instrument registers cache metrics on the observer's meter and logs the
// registration.
func Instrument(ctx context.Context, obs Observer, meta CacheMeta, src StatsSource) (metric.Registration, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	reg, err := RegisterCacheMetrics(obs.Meter(), meta, src)
	if err != nil {
		return nil, err
	}
	obs.Logger().WithCache(meta).Info(ctx, "cache instrumented",
		Field{Key: "capacity", Value: src.Capacity()},
		Field{Key: "capacity_manual", Value: src.IsCapacitySetManually()},
	)
	return reg, nil
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
