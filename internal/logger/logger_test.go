package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := newLogger(buf, "debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	log = newLogger(buf, "nonsense", "production")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestPipelineLoggerSourcePending(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPipelineLogger(log)

	pl.LogSourcePending("atlantic", "file", "missing_source", errors.New("no such file"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "pipeline", entry["component"])
	assert.Equal(t, "atlantic", entry["division"])
	assert.Equal(t, "missing_source", entry["reason"])
	assert.Equal(t, "no such file", entry["error"])
	assert.Equal(t, "warning", entry["level"])
}

func TestPipelineLoggerRowsSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	pl := NewPipelineLogger(log)

	pl.LogRowsSkipped("pacific", 0, 0, 0)
	assert.Zero(t, buf.Len())

	pl.LogRowsSkipped("pacific", 2, 1, 0)
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(2), entry["short_rows"])
	assert.Equal(t, float64(1), entry["invalid_rows"])
}

func TestPipelineLoggerFixtureSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	NewPipelineLogger(log).LogFixtureSkipped("BOS", "XXX", "2025-01-20T19:30:00-05:00")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "XXX", entry["home"])
}

func TestPipelineLoggerPredictionIsDebug(t *testing.T) {
	log, buf := setupTestLogger()
	log.SetLevel(logrus.InfoLevel)
	NewPipelineLogger(log).LogPrediction("BOS", "NYK", "BOS", 12.5, "Overall Win Probability")
	assert.Zero(t, buf.Len())
}

func TestPipelineLoggerSnapshotWritten(t *testing.T) {
	log, buf := setupTestLogger()
	NewPipelineLogger(log).LogSnapshotWritten("out/snap.json", "abc", 6, 4)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "abc", entry["snapshot_id"])
	assert.Equal(t, float64(4), entry["matches"])
}

func TestServerLoggerRequest(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewServerLogger(log)

	sl.LogRequest("GET", "/api/predictions", 503, 1500*time.Microsecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "server", entry["component"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, 1.5, entry["duration_ms"])
}
