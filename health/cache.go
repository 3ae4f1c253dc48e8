package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/cachemeter/observe"
)

// CacheCheckerConfig sets the thresholds a CacheChecker judges against.
type CacheCheckerConfig struct {
	// MinHitRatio is the lifetime hit ratio below which the cache is degraded.
	// Zero disables the check.
	MinHitRatio float64

	// MinRequests is the number of requests needed before the hit ratio is
	// judged at all.
	MinRequests int64

	// MaxFillRatio is the weighted size to capacity ratio at or above which
	// the cache is degraded. Zero disables the check.
	MaxFillRatio float64
}

// CacheChecker reports the health of a single instrumented cache.
type CacheChecker struct {
	name   string
	src    observe.StatsSource
	config CacheCheckerConfig
}

// NewCacheChecker creates a checker reading statistics from src.
func NewCacheChecker(name string, src observe.StatsSource, config CacheCheckerConfig) *CacheChecker {
	return &CacheChecker{name: name, src: src, config: config}
}

func (c *CacheChecker) Name() string {
	return c.name
}

// Check judges the cache from a single read of its statistics.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("check canceled", err)
	}
	if c.src == nil {
		return Unhealthy("no statistics source", observe.ErrNilStatsSource)
	}

	requests := c.src.Requests()
	hits := c.src.Hits()
	size := c.src.Size()
	weighted := c.src.WeightedSize()
	capacity := c.src.Capacity()

	ratio := observe.HitRatio(c.src)

	details := map[string]any{
		"requests":        requests,
		"hits":            hits,
		"hit_ratio":       ratio,
		"size":            size,
		"weighted_size":   weighted,
		"capacity":        capacity,
		"capacity_manual": c.src.IsCapacitySetManually(),
	}

	if capacity == 0 && size > 0 {
		return Unhealthy(fmt.Sprintf("cache %s holds %d entries with zero capacity", c.name, size), ErrCheckFailed).
			WithDetails(details)
	}

	if c.config.MinHitRatio > 0 && requests >= c.config.MinRequests && requests > 0 && ratio < c.config.MinHitRatio {
		return Degraded(fmt.Sprintf("hit ratio %.2f below %.2f", ratio, c.config.MinHitRatio)).
			WithDetails(details)
	}

	if c.config.MaxFillRatio > 0 && capacity > 0 {
		fill := float64(weighted) / float64(capacity)
		details["fill_ratio"] = fill
		if fill >= c.config.MaxFillRatio {
			return Degraded(fmt.Sprintf("cache %.0f%% full", fill*100)).WithDetails(details)
		}
	}

	return Healthy("cache operating normally").WithDetails(details)
}
