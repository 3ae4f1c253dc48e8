// Package health judges cache health from its statistics.
//
// A Checker reports a Result with one of three states: Healthy, Degraded or
// Unhealthy. CacheChecker derives that state from a cache's hit ratio and fill
// level, and Aggregator combines several checkers into one.
//
// # Basic Usage
//
//	checker := health.NewCacheChecker("users", usersCache, health.CacheCheckerConfig{
//	    MinHitRatio:  0.5,
//	    MinRequests:  1000,
//	    MaxFillRatio: 0.95,
//	})
//
//	result := checker.Check(ctx)
//	if result.Status != health.StatusHealthy {
//	    log.Printf("users cache: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
//	agg := health.NewAggregator(health.AggregatorConfig{Logger: logger})
//	agg.Register("users", usersChecker)
//	agg.Register("sessions", sessionsChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := health.Overall(results)
package health
