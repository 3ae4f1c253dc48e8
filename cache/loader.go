package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key missing from the cache.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// SkipRule determines whether a loaded value should be left out of the cache.
// Returns true if caching should be skipped.
type SkipRule[K comparable] func(key K) bool

// LoaderOption configures a Loader.
type LoaderOption[K comparable, V any] func(*Loader[K, V])

// WithSkip sets the rule for keys whose loaded values are not cached.
func WithSkip[K comparable, V any](rule SkipRule[K]) LoaderOption[K, V] {
	return func(l *Loader[K, V]) {
		l.skip = rule
	}
}

// Loader reads through an InstrumentingCache, loading and storing missing values.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent misses for the same key
//     share a single load. Distinct keys never share a load.
//   - Context: returns ctx.Err() without loading if ctx is already done. A
//     caller whose ctx ends while waiting returns ctx.Err(); the shared load
//     keeps running for the other callers and is not canceled with it.
//   - Errors: load errors are returned unchanged and never cached.
type Loader[K comparable, V any] struct {
	cache *InstrumentingCache[K, V]
	load  LoadFunc[K, V]
	skip  SkipRule[K]
	group singleflight.Group

	mu       sync.Mutex
	seq      uint64
	inflight map[K]string // key -> singleflight id, never reused for another key
}

// NewLoader creates a read-through loader over c.
func NewLoader[K comparable, V any](c *InstrumentingCache[K, V], load LoadFunc[K, V], opts ...LoaderOption[K, V]) (*Loader[K, V], error) {
	if c == nil {
		return nil, ErrNilStore
	}
	if load == nil {
		return nil, ErrNilLoader
	}
	l := &Loader[K, V]{cache: c, load: load, inflight: make(map[K]string)}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Get returns the cached value for key, loading it on a miss.
// The lookup counts as a request on the underlying InstrumentingCache.
func (l *Loader[K, V]) Get(ctx context.Context, key K) (V, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}

	id := l.flightID(key)
	ch := l.group.DoChan(id, func() (any, error) {
		defer l.land(key, id)
		// Another caller may have stored it while we waited.
		if v, ok := l.cache.GetInternal(key); ok {
			return v, nil
		}
		v, err := l.load(context.WithoutCancel(ctx), key)
		if err != nil {
			return v, err
		}
		if l.skip == nil || !l.skip(key) {
			l.cache.Put(key, v)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

// flightID returns the singleflight id for key, allocating one if no load for
// key is in flight.
func (l *Loader[K, V]) flightID(key K) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.inflight[key]
	if !ok {
		l.seq++
		id = strconv.FormatUint(l.seq, 36)
		l.inflight[key] = id
	}
	return id
}

// land releases key's id once its load has finished.
func (l *Loader[K, V]) land(key K, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inflight[key] == id {
		delete(l.inflight, key)
	}
}

// Forget drops any in-flight load for key so the next miss loads afresh.
func (l *Loader[K, V]) Forget(key K) {
	l.mu.Lock()
	id, ok := l.inflight[key]
	delete(l.inflight, key)
	l.mu.Unlock()

	if ok {
		l.group.Forget(id)
	}
}
