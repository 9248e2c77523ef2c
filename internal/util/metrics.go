package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests sent to the catalog API",
	}, []string{"operation", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of catalog API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	SessionsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sessions_expired_total",
		Help: "Total number of sessions invalidated by an upstream 401",
	})

	CatalogFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetches_total",
		Help: "Total number of product collection fetches",
	}, []string{"source"})

	ImageFetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_fetch_failures_total",
		Help: "Total number of per-product image list fetches that failed",
	})

	ImageCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_cache_hits_total",
		Help: "Total number of image lookups served from the cache",
	})

	ImageCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_cache_misses_total",
		Help: "Total number of image lookups that enqueued a fetch",
	})

	PagesRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pages_rendered_total",
		Help: "Total number of storefront pages rendered",
	}, []string{"template"})

	ActivityEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_events_total",
		Help: "Total number of admin activity events published",
	}, []string{"type", "result"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
