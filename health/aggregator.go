package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/cachemeter/observe"
)

// AggregatorConfig configures the health aggregator.
type AggregatorConfig struct {
	// Timeout is the maximum time to wait for all checks.
	// Default: 10 seconds
	Timeout time.Duration

	// Concurrency caps the number of checks run at once. Zero or less runs
	// every check at the same time; 1 runs them one after another.
	Concurrency int

	// Logger, when set, receives a line for every check that is not healthy.
	Logger observe.Logger
}

// Aggregator combines multiple health checkers into a single composite check.
type Aggregator struct {
	config   AggregatorConfig
	mu       sync.RWMutex
	checkers map[string]Checker
	order    []string
}

// NewAggregator creates a new health aggregator.
func NewAggregator(config ...AggregatorConfig) *Aggregator {
	var cfg AggregatorConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Aggregator{
		config:   cfg,
		checkers: make(map[string]Checker),
	}
}

// Register adds a health checker to the aggregator, replacing any checker
// already registered under name.
func (a *Aggregator) Register(name string, checker Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.checkers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.checkers[name] = checker
}

// RegisterCache registers a CacheChecker for src under the cache's ID.
func (a *Aggregator) RegisterCache(meta observe.CacheMeta, src observe.StatsSource, config CacheCheckerConfig) {
	id := meta.CacheID()
	a.Register(id, NewCacheChecker(id, src, config))
}

// Unregister removes a health checker from the aggregator.
func (a *Aggregator) Unregister(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.checkers, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// CheckerNames returns the names of all registered checkers in registration order.
func (a *Aggregator) CheckerNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// Check runs a single named health check.
func (a *Aggregator) Check(ctx context.Context, name string) (Result, error) {
	a.mu.RLock()
	checker, ok := a.checkers[name]
	a.mu.RUnlock()

	if !ok {
		return Result{}, ErrCheckerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()
	return a.runCheck(ctx, name, checker), nil
}

// CheckAll runs all registered health checks and returns the results by name.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, checker := range a.checkers {
		checkers[name] = checker
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	if a.config.Concurrency > 0 {
		g.SetLimit(a.config.Concurrency)
	}
	for name, checker := range checkers {
		g.Go(func() error {
			result := a.runCheck(ctx, name, checker)
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Overall computes the worst status among results.
// An empty set is healthy.
func Overall(results map[string]Result) Status {
	status := StatusHealthy
	for _, result := range results {
		if result.Status > status {
			status = result.Status
		}
	}
	return status
}

func (a *Aggregator) runCheck(ctx context.Context, name string, checker Checker) Result {
	start := time.Now()

	resultCh := make(chan Result, 1)
	go func() {
		result := checker.Check(ctx)
		result.Duration = time.Since(start)
		if result.Timestamp.IsZero() {
			result.Timestamp = start
		}
		resultCh <- result
	}()

	var result Result
	select {
	case result = <-resultCh:
	case <-ctx.Done():
		result = Result{
			Status:    StatusUnhealthy,
			Message:   "check timed out",
			Error:     ErrCheckTimeout,
			Duration:  time.Since(start),
			Timestamp: start,
		}
	}

	a.logResult(ctx, name, result)
	return result
}

func (a *Aggregator) logResult(ctx context.Context, name string, result Result) {
	if a.config.Logger == nil || result.Status == StatusHealthy {
		return
	}

	fields := []observe.Field{
		{Key: "check", Value: name},
		{Key: "status", Value: result.Status.String()},
		{Key: "message", Value: result.Message},
		{Key: "duration_ms", Value: float64(result.Duration.Microseconds()) / 1000},
	}
	if result.Error != nil {
		fields = append(fields, observe.Field{Key: "error", Value: result.Error.Error()})
	}

	// The check context may already be done; logging must not depend on it.
	ctx = context.WithoutCancel(ctx)
	if result.Status == StatusUnhealthy {
		a.config.Logger.Error(ctx, "health check unhealthy", fields...)
		return
	}
	a.config.Logger.Warn(ctx, "health check degraded", fields...)
}

// Checker returns the aggregator as a single Checker.
func (a *Aggregator) Checker() Checker {
	return &aggregatorChecker{agg: a}
}

type aggregatorChecker struct {
	agg *Aggregator
}

func (c *aggregatorChecker) Name() string {
	return "aggregate"
}

func (c *aggregatorChecker) Check(ctx context.Context) Result {
	results := c.agg.CheckAll(ctx)
	status := Overall(results)

	details := make(map[string]any, len(results))
	for name, result := range results {
		details[name] = map[string]any{
			"status":   result.Status.String(),
			"message":  result.Message,
			"duration": result.Duration.String(),
		}
	}

	var message string
	switch status {
	case StatusHealthy:
		message = "all caches healthy"
	case StatusDegraded:
		message = "some caches degraded"
	default:
		message = "some caches unhealthy"
	}

	return Result{
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}
