package cache

// Stats is a point-in-time copy of an InstrumentingCache's statistics.
type Stats struct {
	Requests            int64
	Hits                int64
	Size                int
	WeightedSize        int64
	Capacity            int64
	CapacitySetManually bool
}

// HitRatio returns the lifetime hit ratio as a value between 0 and 1.
// Returns 0 if there have been no requests.
func (s Stats) HitRatio() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Requests)
}

// Misses returns Requests minus Hits, floored at zero.
func (s Stats) Misses() int64 {
	if s.Hits > s.Requests {
		return 0
	}
	return s.Requests - s.Hits
}
