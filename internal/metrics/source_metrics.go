package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Source metrics
var (
	SourceFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_fetches_total",
		Help:      "Division export fetches, by source and outcome",
	}, []string{"source", "outcome"})
	SourceFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_fetch_duration_seconds",
		Help:      "Time to open a division export",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

// RecordSourceFetch records one attempt to open a division export.
func RecordSourceFetch(source, outcome string, durationSeconds float64) {
	SourceFetchesTotal.WithLabelValues(source, outcome).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(durationSeconds)
}
