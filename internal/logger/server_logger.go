package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ServerLogger provides request logging for the snapshot server.
type ServerLogger struct {
	*logrus.Entry
}

// NewServerLogger creates a new server logger.
func NewServerLogger(baseLogger *logrus.Logger) *ServerLogger {
	return &ServerLogger{
		Entry: baseLogger.WithField("component", "server"),
	}
}

// LogRequest logs a served request.
func (sl *ServerLogger) LogRequest(method, path string, status int, duration time.Duration) {
	entry := sl.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
	if status >= 500 {
		entry.Error("Request failed")
		return
	}
	entry.Debug("Request served")
}

// LogSnapshotLoaded logs a snapshot read from disk into the cache.
func (sl *ServerLogger) LogSnapshotLoaded(path string, bytes int) {
	sl.WithFields(logrus.Fields{
		"path":  path,
		"bytes": bytes,
	}).Info("Snapshot loaded into cache")
}
