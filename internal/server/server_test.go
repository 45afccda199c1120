package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/division-oracle/internal/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		SchemaVersion: snapshot.SchemaVersion,
		Meta:          snapshot.Meta{SnapshotID: "abc", Model: "Oracle v1.0", DatasetSeasons: []string{"2024-25"}},
		Divisions: map[string]snapshot.Division{
			"atlantic": {
				Name:       "Atlantic",
				Conference: "East",
				Status:     "ready",
				Teams:      []snapshot.Team{{Team: "Boston Celtics", Code: "BOS", Season: "2024-25"}},
				Analytics:  &snapshot.Analytics{StrongestTeam: "Boston Celtics", WeakestTeam: "Boston Celtics"},
			},
			"pacific": {Name: "Pacific", Conference: "West", Status: "pending", PendingReason: "missing_source", IsComingSoon: true, Teams: []snapshot.Team{}},
		},
		DivisionOrder: []string{"atlantic", "pacific"},
		Matches:       []snapshot.Match{},
	}
}

func newTestServer(t *testing.T, ttl time.Duration) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oracle_predictions.json")
	require.NoError(t, snapshot.Write(path, testSnapshot()))

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewServer(Config{
		ServiceName:  "division-oracle",
		Version:      "test",
		SnapshotPath: path,
		CacheTTL:     ttl,
		MetricsPath:  "/metrics",
		Logger:       log,
	}), path
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPredictionsServesFileVerbatim(t *testing.T) {
	srv, path := newTestServer(t, time.Minute)

	rec := get(t, srv.Handler(), "/api/predictions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, rec.Body.Bytes())
}

func TestDivisionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, time.Minute)
	h := srv.Handler()

	rec := get(t, h, "/api/divisions/atlantic")
	require.Equal(t, http.StatusOK, rec.Code)
	var division snapshot.Division
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &division))
	assert.Equal(t, "Atlantic", division.Name)
	require.NotNil(t, division.Analytics)

	rec = get(t, h, "/api/divisions/pacific")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_coming_soon":true`)

	rec = get(t, h, "/api/divisions/northwest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown division")
}

func TestCacheServesUntilExpiry(t *testing.T) {
	srv, path := newTestServer(t, time.Hour)
	h := srv.Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/api/predictions").Code)
	require.NoError(t, os.Remove(path))
	assert.Equal(t, http.StatusOK, get(t, h, "/api/predictions").Code)

	srv.cache.Invalidate()
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/api/predictions").Code)
}

func TestZeroTTLRereadsFile(t *testing.T) {
	srv, path := newTestServer(t, 0)
	h := srv.Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/api/predictions").Code)
	require.NoError(t, os.Remove(path))
	time.Sleep(time.Millisecond)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/api/predictions").Code)
}

func TestHealthAndLive(t *testing.T) {
	srv, _ := newTestServer(t, time.Minute)
	h := srv.Handler()

	for _, path := range []string{"/health", "/live"} {
		rec := get(t, h, path)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "division-oracle", resp.Service)
	}
}

func TestReady(t *testing.T) {
	srv, path := newTestServer(t, 0)
	h := srv.Handler()

	rec := get(t, h, "/ready")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["snapshot"])

	srv.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/ready").Code)
	srv.SetReady(true)

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	time.Sleep(time.Millisecond)
	rec = get(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, time.Minute)
	h := srv.Handler()

	get(t, h, "/api/predictions")
	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "oracle_http_requests_total")
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, time.Minute)
	h := srv.Handler()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/predictions"},
		{http.MethodDelete, "/api/divisions/atlantic"},
		{http.MethodPut, "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t, time.Minute)
	assert.Equal(t, http.StatusNotFound, get(t, srv.Handler(), "/api/standings").Code)
}
