package cache

import "errors"

// Sentinel errors for cache operations.
var (
	ErrNilStore        = errors.New("cache: store is nil")
	ErrNilLoader       = errors.New("cache: load function is nil")
	ErrInvalidCapacity = errors.New("cache: capacity must not be negative")
)

// Store is the underlying cache wrapped by InstrumentingCache.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: eviction, weighting and ordering are the store's own concern.
// - Errors: Get never errors; it returns (zero, false) on miss.
type Store[K comparable, V any] interface {
	// Get looks up a value. Returns (zero, false) when absent.
	Get(key K) (V, bool)

	// Put stores a value, possibly evicting others.
	Put(key K, value V)

	// Remove deletes a key. Idempotent.
	Remove(key K)

	// Clear drops every entry.
	Clear()

	// Size returns the number of entries.
	Size() int

	// WeightedSize returns the summed weight of all entries.
	WeightedSize() int64

	// Capacity returns the current weighted capacity.
	Capacity() int64

	// SetCapacity resizes the store.
	SetCapacity(capacity int64) error

	// Keys returns every key currently held.
	Keys() []K

	// HotKeys returns up to n keys the store considers hottest.
	HotKeys(n int) []K

	// ContainsKey reports presence without counting as a read.
	ContainsKey(key K) bool

	// IsPutCopying reports whether Put stores a copy of the value.
	IsPutCopying() bool
}
