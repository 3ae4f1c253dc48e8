package cache

import (
	"container/list"
	"sync"
	"time"
)

// StoreOption configures a MemoryStore.
type StoreOption[K comparable, V any] func(*MemoryStore[K, V])

// WithWeigher sets the function that weighs each entry against the capacity.
// Weights below 1 are counted as 1.
func WithWeigher[K comparable, V any](fn func(K, V) int64) StoreOption[K, V] {
	return func(s *MemoryStore[K, V]) {
		s.weigher = fn
	}
}

// WithCopier makes Put store copy(value) instead of value.
func WithCopier[K comparable, V any](fn func(V) V) StoreOption[K, V] {
	return func(s *MemoryStore[K, V]) {
		s.copier = fn
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock[K comparable, V any](fn func() time.Time) StoreOption[K, V] {
	return func(s *MemoryStore[K, V]) {
		s.now = fn
	}
}

// MemoryStore is an in-memory, weighted LRU Store.
type MemoryStore[K comparable, V any] struct {
	mu       sync.Mutex
	policy   Policy
	order    *list.List // front is most recently used
	entries  map[K]*list.Element
	weighted int64

	weigher func(K, V) int64
	copier  func(V) V
	now     func() time.Time
}

type storeEntry[K comparable, V any] struct {
	key       K
	value     V
	weight    int64
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store with the given policy.
func NewMemoryStore[K comparable, V any](policy Policy, opts ...StoreOption[K, V]) (*MemoryStore[K, V], error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	s := &MemoryStore[K, V]{
		policy:  policy,
		order:   list.New(),
		entries: make(map[K]*list.Element),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get retrieves a value and marks it most recently used.
// Returns (zero, false) on miss or expiry.
func (s *MemoryStore[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	e := el.Value.(*storeEntry[K, V])
	if s.expired(e) {
		// Expired - clean up lazily
		s.removeElement(el)
		var zero V
		return zero, false
	}
	s.order.MoveToFront(el)
	return e.value, true
}

// Put stores a value, evicting least recently used entries while over capacity.
// An entry heavier than the whole capacity is not retained.
func (s *MemoryStore[K, V]) Put(key K, value V) {
	if s.copier != nil {
		value = s.copier(value)
	}
	weight := s.weigh(key, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		s.removeElement(el)
	}
	if weight > s.policy.Capacity {
		return
	}

	e := &storeEntry[K, V]{
		key:       key,
		value:     value,
		weight:    weight,
		expiresAt: s.policy.ExpiresAt(s.now()),
	}
	s.entries[key] = s.order.PushFront(e)
	s.weighted += weight
	s.evict()
}

// Remove deletes a key. Idempotent - no-op on miss.
func (s *MemoryStore[K, V]) Remove(key K) {
	s.mu.Lock()
	if el, ok := s.entries[key]; ok {
		s.removeElement(el)
	}
	s.mu.Unlock()
}

func (s *MemoryStore[K, V]) Clear() {
	s.mu.Lock()
	s.order.Init()
	s.entries = make(map[K]*list.Element)
	s.weighted = 0
	s.mu.Unlock()
}

func (s *MemoryStore[K, V]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore[K, V]) WeightedSize() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weighted
}

func (s *MemoryStore[K, V]) Capacity() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Capacity
}

// SetCapacity changes the capacity, evicting immediately when shrinking.
func (s *MemoryStore[K, V]) SetCapacity(capacity int64) error {
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	s.mu.Lock()
	s.policy.Capacity = capacity
	s.evict()
	s.mu.Unlock()
	return nil
}

// Keys returns all keys, most recently used first.
func (s *MemoryStore[K, V]) Keys() []K {
	return s.HotKeys(-1)
}

// HotKeys returns up to n keys, most recently used first.
// A negative n returns every key.
func (s *MemoryStore[K, V]) HotKeys(n int) []K {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	keys := make([]K, 0, n)
	for el := s.order.Front(); el != nil && len(keys) < n; el = el.Next() {
		e := el.Value.(*storeEntry[K, V])
		if s.expired(e) {
			continue
		}
		keys = append(keys, e.key)
	}
	return keys
}

// ContainsKey reports whether key is present and unexpired.
// It does not change recency.
func (s *MemoryStore[K, V]) ContainsKey(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return false
	}
	return !s.expired(el.Value.(*storeEntry[K, V]))
}

// IsPutCopying reports whether a copier was configured.
func (s *MemoryStore[K, V]) IsPutCopying() bool {
	return s.copier != nil
}

func (s *MemoryStore[K, V]) weigh(key K, value V) int64 {
	if s.weigher == nil {
		return 1
	}
	if w := s.weigher(key, value); w > 1 {
		return w
	}
	return 1
}

func (s *MemoryStore[K, V]) expired(e *storeEntry[K, V]) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}

// evict must be called with mu held.
func (s *MemoryStore[K, V]) evict() {
	for s.weighted > s.policy.Capacity {
		el := s.order.Back()
		if el == nil {
			return
		}
		s.removeElement(el)
	}
}

// removeElement must be called with mu held.
func (s *MemoryStore[K, V]) removeElement(el *list.Element) {
	e := s.order.Remove(el).(*storeEntry[K, V])
	delete(s.entries, e.key)
	s.weighted -= e.weight
}

// Ensure MemoryStore implements Store
var _ Store[string, []byte] = (*MemoryStore[string, []byte])(nil)
