// Package metrics provides Prometheus metrics collection for the POS
// checkout service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ScansTotal tracks barcode scan attempts. kind is "scale", "item",
	// or "search"; result is "added", "rejected", or "miss".
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_scans_total",
			Help: "Total number of barcode scans processed",
		},
		[]string{"kind", "result"},
	)

	// LookupDuration tracks remote catalog lookup duration by lookup type.
	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pos_lookup_duration_seconds",
			Help:    "Remote catalog lookup duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"lookup", "result"},
	)

	// ActiveSessions tracks the number of open register sessions.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_active_sessions",
			Help: "Number of open register sessions",
		},
	)

	// CartMutationsTotal tracks cart mutations by action.
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_cart_mutations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"action"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordScan records the outcome of one scan attempt.
func RecordScan(kind, result string) {
	ScansTotal.WithLabelValues(kind, result).Inc()
}

// RecordLookup records a remote lookup and its duration.
func RecordLookup(lookup, result string, duration time.Duration) {
	LookupDuration.WithLabelValues(lookup, result).Observe(duration.Seconds())
}

// RecordCartMutation records a cart mutation by action name.
func RecordCartMutation(action string) {
	CartMutationsTotal.WithLabelValues(action).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}
