// Package cache provides request and hit accounting for key-value caches.
//
// It provides a Store interface describing the underlying cache, an
// InstrumentingCache decorator that counts reads and tracks manual capacity
// overrides, a weighted LRU MemoryStore, and a read-through Loader.
package cache
