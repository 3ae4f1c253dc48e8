package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheCollector is a prometheus.Collector reporting a cache's statistics at
// scrape time, for callers that register with a prometheus.Registry directly.
type CacheCollector struct {
	src StatsSource

	requests *prometheus.Desc
	hits     *prometheus.Desc
	ratio    *prometheus.Desc
	size     *prometheus.Desc
	weighted *prometheus.Desc
	capacity *prometheus.Desc
	manual   *prometheus.Desc
}

// NewCacheCollector creates a collector for src. Metric names are prefixed
// with namespace and labelled with the cache id.
func NewCacheCollector(namespace string, meta CacheMeta, src StatsSource) (*CacheCollector, error) {
	if src == nil {
		return nil, ErrNilStatsSource
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	labels := prometheus.Labels{"cache": meta.CacheID()}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "cache", name), help, nil, labels)
	}

	return &CacheCollector{
		src:      src,
		requests: desc("requests_total", "Number of counted cache reads."),
		hits:     desc("hits_total", "Number of cache reads that found a value."),
		ratio:    desc("hit_ratio", "Lifetime ratio of hits to requests."),
		size:     desc("entries", "Number of entries in the cache."),
		weighted: desc("weighted_size", "Summed weight of all cache entries."),
		capacity: desc("capacity", "Weighted capacity of the cache."),
		manual:   desc("capacity_manual", "1 if the capacity was set by an operator, else 0."),
	}, nil
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.requests
	ch <- c.hits
	ch <- c.ratio
	ch <- c.size
	ch <- c.weighted
	ch <- c.capacity
	ch <- c.manual
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.requests, prometheus.CounterValue, float64(c.src.Requests()))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(c.src.Hits()))
	ch <- prometheus.MustNewConstMetric(c.ratio, prometheus.GaugeValue, HitRatio(c.src))
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(c.src.Size()))
	ch <- prometheus.MustNewConstMetric(c.weighted, prometheus.GaugeValue, float64(c.src.WeightedSize()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.src.Capacity()))
	ch <- prometheus.MustNewConstMetric(c.manual, prometheus.GaugeValue, float64(boolToInt64(c.src.IsCapacitySetManually())))
}

// Ensure CacheCollector implements prometheus.Collector
var _ prometheus.Collector = (*CacheCollector)(nil)
