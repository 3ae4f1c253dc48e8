package cache

import "time"

// Policy configures a MemoryStore.
type Policy struct {
	// Capacity is the maximum summed weight of all entries.
	// Zero means nothing is retained.
	Capacity int64

	// TTL is how long an entry stays readable after Put.
	// If zero, entries never expire.
	TTL time.Duration
}

// DefaultPolicy returns the default store policy.
// Capacity: 1024, TTL: none
func DefaultPolicy() Policy {
	return Policy{
		Capacity: 1024,
		TTL:      0,
	}
}

// Validate checks the policy for invalid values.
func (p Policy) Validate() error {
	if p.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}

// Expires reports whether entries stored under this policy expire.
func (p Policy) Expires() bool {
	return p.TTL > 0
}

// ExpiresAt returns the expiry time for an entry stored at now.
// Returns the zero time if entries do not expire.
func (p Policy) ExpiresAt(now time.Time) time.Time {
	if !p.Expires() {
		return time.Time{}
	}
	return now.Add(p.TTL)
}
