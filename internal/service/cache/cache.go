// Package cache defines the caching contract used by lookup services.
package cache

// Cache is a string-keyed cache with a generic value type.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance counters.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// WithMetrics extends Cache with metrics reporting.
type WithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}
