// Package metrics provides centralized Prometheus metrics registry for the oracle batch and server.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "oracle"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RowsParsedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_parsed_total",
		Help:      "Current-season rows accepted per division",
	}, []string{"division"})
	RowsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_skipped_total",
		Help:      "Rows dropped while parsing division exports",
	}, []string{"division", "reason"})
	DivisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "divisions_total",
		Help:      "Divisions built, by status",
	}, []string{"status"})
	FixturesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fixtures_skipped_total",
		Help:      "Fixtures skipped because a participant was missing",
	})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Matchup predictions emitted, by confidence level",
	}, []string{"confidence_level"})
	BatchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_runs_total",
		Help:      "Batch runs, by result",
	}, []string{"result"})
)

// Gauge metrics
var (
	TeamsInBatch = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "teams_in_batch",
		Help:      "Current-season teams in the last batch",
	})
	PendingDivisions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_divisions",
		Help:      "Divisions published as pending in the last batch",
	})
)

// Histogram metrics
var (
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(RowsParsedTotal)
		registry.MustRegister(RowsSkippedTotal)
		registry.MustRegister(DivisionsTotal)
		registry.MustRegister(FixturesSkippedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(BatchRunsTotal)

		registry.MustRegister(TeamsInBatch)
		registry.MustRegister(PendingDivisions)

		registry.MustRegister(BatchDuration)

		registry.MustRegister(SourceFetchesTotal)
		registry.MustRegister(SourceFetchDuration)

		registry.MustRegister(HTTPRequestsTotal)
		registry.MustRegister(HTTPRequestDuration)
		registry.MustRegister(SnapshotCacheTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRows records parse outcomes for one division export.
func RecordRows(division string, parsed, short, invalid, duplicate int) {
	RowsParsedTotal.WithLabelValues(division).Add(float64(parsed))
	RowsSkippedTotal.WithLabelValues(division, "short").Add(float64(short))
	RowsSkippedTotal.WithLabelValues(division, "invalid").Add(float64(invalid))
	RowsSkippedTotal.WithLabelValues(division, "duplicate").Add(float64(duplicate))
}

// RecordDivision records a built division by status.
func RecordDivision(status string) {
	DivisionsTotal.WithLabelValues(status).Inc()
}

// RecordFixtureSkipped records a skipped fixture.
func RecordFixtureSkipped() {
	FixturesSkippedTotal.Inc()
}

// RecordPrediction records an emitted prediction.
func RecordPrediction(confidenceLevel string) {
	PredictionsTotal.WithLabelValues(confidenceLevel).Inc()
}

// RecordBatch records a finished batch run.
func RecordBatch(durationSeconds float64, teams, pending int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	BatchRunsTotal.WithLabelValues(result).Inc()
	BatchDuration.Observe(durationSeconds)
	if err == nil {
		TeamsInBatch.Set(float64(teams))
		PendingDivisions.Set(float64(pending))
	}
}
