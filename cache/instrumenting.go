package cache

import "sync/atomic"

// InstrumentingCache wraps a Store in request and hit tracking.
//
// Contract:
//   - Concurrency: safe for concurrent use. Counters are independent atomics, so
//     a Get racing with Clear or RecentHitRate may be attributed to either side.
//   - Errors: store errors are returned unchanged.
//   - Ownership: keys and values are passed through without inspection.
type InstrumentingCache[K comparable, V any] struct {
	store Store[K, V]

	requests     atomic.Int64
	hits         atomic.Int64
	lastRequests atomic.Int64
	lastHits     atomic.Int64

	capacitySetManually atomic.Bool
}

// NewInstrumentingCache wraps store. Returns ErrNilStore if store is nil.
func NewInstrumentingCache[K comparable, V any](store Store[K, V]) (*InstrumentingCache[K, V], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	return &InstrumentingCache[K, V]{store: store}, nil
}

// Get looks up key and records the request, and the hit if the key was present.
func (c *InstrumentingCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.store.Get(key)
	c.requests.Add(1)
	if ok {
		c.hits.Add(1)
	}
	return v, ok
}

// GetInternal looks up key without touching the statistics.
func (c *InstrumentingCache[K, V]) GetInternal(key K) (V, bool) {
	return c.store.Get(key)
}

// Put stores value under key. Not counted.
func (c *InstrumentingCache[K, V]) Put(key K, value V) {
	c.store.Put(key, value)
}

// Remove deletes key from the store. Not counted.
func (c *InstrumentingCache[K, V]) Remove(key K) {
	c.store.Remove(key)
}

// Clear empties the store and resets the counters, including the
// recent-hit-rate baseline. Capacity and the manual flag are kept.
func (c *InstrumentingCache[K, V]) Clear() {
	c.store.Clear()
	c.requests.Store(0)
	c.hits.Store(0)
	c.lastRequests.Store(0)
	c.lastHits.Store(0)
}

// ContainsKey reports whether key is present without counting a request.
func (c *InstrumentingCache[K, V]) ContainsKey(key K) bool {
	return c.store.ContainsKey(key)
}

// Size returns the number of entries in the store.
func (c *InstrumentingCache[K, V]) Size() int {
	return c.store.Size()
}

// WeightedSize returns the summed weight of all entries in the store.
func (c *InstrumentingCache[K, V]) WeightedSize() int64 {
	return c.store.WeightedSize()
}

// Keys returns the keys currently held by the store.
func (c *InstrumentingCache[K, V]) Keys() []K {
	return c.store.Keys()
}

// HotKeys returns up to n keys the store ranks as most used.
func (c *InstrumentingCache[K, V]) HotKeys(n int) []K {
	return c.store.HotKeys(n)
}

// IsPutCopying reports whether the store copies values on Put.
func (c *InstrumentingCache[K, V]) IsPutCopying() bool {
	return c.store.IsPutCopying()
}

// Capacity returns the store's current capacity.
func (c *InstrumentingCache[K, V]) Capacity() int64 {
	return c.store.Capacity()
}

// UpdateCapacity resizes the store without marking the capacity as manually set.
// Used by automatic sizing.
func (c *InstrumentingCache[K, V]) UpdateCapacity(capacity int64) error {
	return c.store.SetCapacity(capacity)
}

// SetCapacity resizes the store and latches the manual override flag.
// The flag is left untouched if the store rejects the new capacity.
func (c *InstrumentingCache[K, V]) SetCapacity(capacity int64) error {
	if err := c.UpdateCapacity(capacity); err != nil {
		return err
	}
	c.capacitySetManually.Store(true)
	return nil
}

// IsCapacitySetManually reports whether SetCapacity has ever succeeded.
func (c *InstrumentingCache[K, V]) IsCapacitySetManually() bool {
	return c.capacitySetManually.Load()
}

// Hits returns the number of Get calls that found a value since the last Clear.
func (c *InstrumentingCache[K, V]) Hits() int64 {
	return c.hits.Load()
}

// Requests returns the number of Get calls since the last Clear.
func (c *InstrumentingCache[K, V]) Requests() int64 {
	return c.requests.Load()
}

// RecentHitRate returns the hit ratio of Get calls made since the previous
// call to RecentHitRate, then moves the baseline forward.
// Returns NaN if there were no requests in the interval.
func (c *InstrumentingCache[K, V]) RecentHitRate() float64 {
	r := c.requests.Load()
	h := c.hits.Load()
	defer func() {
		c.lastRequests.Store(r)
		c.lastHits.Store(h)
	}()
	return float64(h-c.lastHits.Load()) / float64(r-c.lastRequests.Load())
}

// Stats returns a point-in-time copy of the statistics.
// It does not move the RecentHitRate baseline.
func (c *InstrumentingCache[K, V]) Stats() Stats {
	return Stats{
		Requests:            c.requests.Load(),
		Hits:                c.hits.Load(),
		Size:                c.store.Size(),
		WeightedSize:        c.store.WeightedSize(),
		Capacity:            c.store.Capacity(),
		CapacitySetManually: c.capacitySetManually.Load(),
	}
}
