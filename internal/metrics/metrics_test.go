package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := InitRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, GetRegistry())
}

func TestRecordRows(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RowsSkippedTotal.WithLabelValues("test_rows", "short"))

	RecordRows("test_rows", 5, 2, 1, 0)

	assert.Equal(t, 5.0, testutil.ToFloat64(RowsParsedTotal.WithLabelValues("test_rows")))
	assert.Equal(t, before+2, testutil.ToFloat64(RowsSkippedTotal.WithLabelValues("test_rows", "short")))
	assert.Equal(t, 1.0, testutil.ToFloat64(RowsSkippedTotal.WithLabelValues("test_rows", "invalid")))
}

func TestRecordBatch(t *testing.T) {
	InitRegistry()
	success := testutil.ToFloat64(BatchRunsTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(BatchRunsTotal.WithLabelValues("error"))

	RecordBatch(0.2, 30, 1, nil)
	assert.Equal(t, success+1, testutil.ToFloat64(BatchRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 30.0, testutil.ToFloat64(TeamsInBatch))
	assert.Equal(t, 1.0, testutil.ToFloat64(PendingDivisions))

	RecordBatch(0.1, 0, 0, errors.New("boom"))
	assert.Equal(t, failed+1, testutil.ToFloat64(BatchRunsTotal.WithLabelValues("error")))
	assert.Equal(t, 30.0, testutil.ToFloat64(TeamsInBatch))
}

func TestRecordCounters(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		record func()
		metric prometheus.Collector
	}{
		{"fixture skipped", RecordFixtureSkipped, FixturesSkippedTotal},
		{"division pending", func() { RecordDivision("pending") }, DivisionsTotal.WithLabelValues("pending")},
		{"prediction", func() { RecordPrediction("high") }, PredictionsTotal.WithLabelValues("high")},
		{"cache hit", func() { RecordSnapshotCache(true) }, SnapshotCacheTotal.WithLabelValues("hit")},
		{"source fetch", func() { RecordSourceFetch("file", "ok", 0.01) }, SourceFetchesTotal.WithLabelValues("file", "ok")},
		{"http request", func() { RecordHTTPRequest("/health", 200, 0.001) }, HTTPRequestsTotal.WithLabelValues("/health", "200")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.metric)
			tt.record()
			assert.Equal(t, before+1, testutil.ToFloat64(tt.metric))
		})
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordFixtureSkipped()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oracle_fixtures_skipped_total")
}
