package service

import (
	"fmt"
	"sync"
	"time"
)

// BatchStats tracks counters for one snapshot batch
type BatchStats struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	Divisions        int
	PendingDivisions int
	Teams            int
	HistoricalRows   int
	ShortRows        int
	InvalidRows      int
	DuplicateRows    int
	Fixtures         int
	Predictions      int
	SkippedFixtures  int
}

// NewBatchStats creates a new stats tracker
func NewBatchStats() *BatchStats {
	return &BatchStats{
		StartTime: time.Now(),
	}
}

// RecordDivision counts a built division
func (s *BatchStats) RecordDivision(pending bool, teams int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Divisions++
	if pending {
		s.PendingDivisions++
	}
	s.Teams += teams
}

// RecordRows adds the row counts from one parsed export
func (s *BatchStats) RecordRows(historical, short, invalid, duplicate int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.HistoricalRows += historical
	s.ShortRows += short
	s.InvalidRows += invalid
	s.DuplicateRows += duplicate
}

// RecordFixtures stores the prediction outcome of the schedule
func (s *BatchStats) RecordFixtures(total, predicted, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fixtures = total
	s.Predictions = predicted
	s.SkippedFixtures = skipped
}

// Finish stamps the batch duration
func (s *BatchStats) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Duration = time.Since(s.StartTime)
}

// SkippedRows returns the number of malformed rows dropped
func (s *BatchStats) SkippedRows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ShortRows + s.InvalidRows + s.DuplicateRows
}

// String returns a formatted string representation of the stats
func (s *BatchStats) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coverage := float64(0)
	if s.Fixtures > 0 {
		coverage = float64(s.Predictions) / float64(s.Fixtures) * 100
	}

	return fmt.Sprintf(
		"BatchStats{Divisions=%d, Pending=%d, Teams=%d, Historical=%d, Skipped=%d/%d/%d, Predictions=%d/%d (%.1f%%), Duration=%v}",
		s.Divisions,
		s.PendingDivisions,
		s.Teams,
		s.HistoricalRows,
		s.ShortRows,
		s.InvalidRows,
		s.DuplicateRows,
		s.Predictions,
		s.Fixtures,
		coverage,
		s.Duration,
	)
}
