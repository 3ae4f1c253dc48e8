package health

import (
	"context"
	"testing"

	"github.com/jonwraymond/cachemeter/observe"
)

func BenchmarkCacheChecker_Check(b *testing.B) {
	c := NewCacheChecker("bench", stubStats{requests: 100, hits: 80, size: 50, weighted: 50, capacity: 100},
		CacheCheckerConfig{MinHitRatio: 0.5, MaxFillRatio: 0.9})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Check(ctx)
	}
}

func BenchmarkAggregator_CheckAll(b *testing.B) {
	agg := NewAggregator()
	for _, name := range []string{"a", "b", "c", "d"} {
		agg.RegisterCache(observe.CacheMeta{Name: name}, stubStats{capacity: 10}, CacheCheckerConfig{})
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = agg.CheckAll(ctx)
	}
}
