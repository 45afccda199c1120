package logger

import (
	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for the snapshot batch.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogSourcePending logs a division that could not be read and will be published as pending.
func (pl *PipelineLogger) LogSourcePending(division, source, reason string, err error) {
	pl.WithFields(logrus.Fields{
		"division": division,
		"source":   source,
		"reason":   reason,
	}).WithError(err).Warn("Division source unavailable, publishing as pending")
}

// LogRowsSkipped logs malformed rows dropped while parsing a division export.
func (pl *PipelineLogger) LogRowsSkipped(division string, short, invalid, duplicate int) {
	if short+invalid+duplicate == 0 {
		return
	}
	pl.WithFields(logrus.Fields{
		"division":       division,
		"short_rows":     short,
		"invalid_rows":   invalid,
		"duplicate_rows": duplicate,
	}).Warn("Skipped malformed rows")
}

// LogDivisionBuilt logs a division group after ranking.
func (pl *PipelineLogger) LogDivisionBuilt(division, status string, teams int, strongest string) {
	pl.WithFields(logrus.Fields{
		"division":  division,
		"status":    status,
		"teams":     teams,
		"strongest": strongest,
	}).Info("Division built")
}

// LogFixtureSkipped logs a fixture dropped because a participant is missing.
func (pl *PipelineLogger) LogFixtureSkipped(away, home, tipoff string) {
	pl.WithFields(logrus.Fields{
		"away":   away,
		"home":   home,
		"tipoff": tipoff,
	}).Warn("Fixture skipped: participant not in current season data")
}

// LogPrediction logs one emitted matchup prediction.
func (pl *PipelineLogger) LogPrediction(away, home, winner string, confidence float64, reasoning string) {
	pl.WithFields(logrus.Fields{
		"away":       away,
		"home":       home,
		"winner":     winner,
		"confidence": confidence,
		"reasoning":  reasoning,
	}).Debug("Prediction emitted")
}

// LogBatchCompleted logs the summary of a finished batch.
func (pl *PipelineLogger) LogBatchCompleted(summary string, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"summary":     summary,
		"duration_ms": durationMs,
	}).Info("Batch completed")
}

// LogSnapshotWritten logs a snapshot persisted to disk.
func (pl *PipelineLogger) LogSnapshotWritten(path, snapshotID string, divisions, matches int) {
	pl.WithFields(logrus.Fields{
		"path":        path,
		"snapshot_id": snapshotID,
		"divisions":   divisions,
		"matches":     matches,
	}).Info("Snapshot written")
}
