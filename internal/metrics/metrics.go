package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal tracks API requests per method and status class
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storekit_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)

	// APIRequestErrorsTotal tracks API request failures per method and kind
	APIRequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storekit_api_request_errors_total",
			Help: "Total number of failed API requests",
		},
		[]string{"method", "kind"},
	)

	// APIRequestLatency tracks API request latency
	APIRequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storekit_api_request_latency_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// CacheHitsTotal tracks query cache hits per resource
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storekit_cache_hits_total",
			Help: "Total number of query cache hits",
		},
		[]string{"resource"},
	)

	// CacheMissesTotal tracks query cache misses per resource
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storekit_cache_misses_total",
			Help: "Total number of query cache misses",
		},
		[]string{"resource"},
	)

	// CacheInvalidationsTotal tracks entries dropped by prefix invalidation
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storekit_cache_invalidations_total",
			Help: "Total number of cache entries invalidated",
		},
		[]string{"resource"},
	)

	// DBConnectionPoolUsage tracks database connection pool usage percentage
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storekit_db_connection_pool_usage",
			Help: "Database connection pool usage percentage",
		},
	)
)
