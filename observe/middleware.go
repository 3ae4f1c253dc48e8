package observe

import (
	"context"
	"time"
)

// LoadFunc is the untyped signature of a cache load function.
type LoadFunc func(ctx context.Context, meta CacheMeta, key any) (any, error)

// Middleware wraps cache loads with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: wrapped functions are safe for concurrent use if the inner one is.
//   - Context: the span context is passed to the inner function.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
//   - Ownership: keys and values are passed through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	if logger == nil {
		logger = &noopLogger{}
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// MiddlewareFromObserver builds a Middleware from an Observer's providers.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Wrap instruments an untyped load function.
func (m *Middleware) Wrap(fn LoadFunc) LoadFunc {
	return func(ctx context.Context, meta CacheMeta, key any) (any, error) {
		var result any
		err := m.observeLoad(ctx, meta, func(ctx context.Context) error {
			var err error
			result, err = fn(ctx, meta, key)
			return err
		})
		return result, err
	}
}

// WrapLoad instruments a typed load function for the cache described by meta.
// The result can be passed straight to cache.NewLoader.
func WrapLoad[K comparable, V any](m *Middleware, meta CacheMeta, fn func(context.Context, K) (V, error)) func(context.Context, K) (V, error) {
	return func(ctx context.Context, key K) (V, error) {
		var result V
		err := m.observeLoad(ctx, meta, func(ctx context.Context) error {
			var err error
			result, err = fn(ctx, key)
			return err
		})
		return result, err
	}
}

func (m *Middleware) observeLoad(ctx context.Context, meta CacheMeta, fn func(context.Context) error) error {
	ctx, span := m.tracer.StartSpan(ctx, meta, "load")
	start := time.Now()

	err := fn(ctx)

	duration := time.Since(start)
	m.tracer.EndSpan(span, err)
	m.metrics.RecordLoad(ctx, meta, duration, err)

	logger := m.logger.WithCache(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Error(ctx, "cache load failed", fields...)
	} else {
		logger.Debug(ctx, "cache load completed", fields...)
	}

	return err
}
