package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Server metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Snapshot server requests, by route and status code",
	}, []string{"route", "code"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Snapshot server request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	SnapshotCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_total",
		Help:      "Snapshot cache lookups, by result",
	}, []string{"result"})
)

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(route string, code int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordSnapshotCache records a cache hit or miss.
func RecordSnapshotCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SnapshotCacheTotal.WithLabelValues(result).Inc()
}
