package models

import "fmt"

// Fixture is one scheduled game between two teams identified by short code
type Fixture struct {
	Away   string `json:"away" validate:"required"`
	Home   string `json:"home" validate:"required"`
	Tipoff string `json:"tipoff" validate:"required"`
}

// Key returns a stable identifier for the fixture
func (f Fixture) Key() string {
	return fmt.Sprintf("%s@%s@%s", f.Away, f.Home, f.Tipoff)
}

// ConfidenceLevel buckets a 0-100 confidence spread for display
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceLow      ConfidenceLevel = "low"
)

// ClassifyConfidence maps a confidence spread onto a ConfidenceLevel
func ClassifyConfidence(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 40:
		return ConfidenceVeryHigh
	case confidence >= 25:
		return ConfidenceHigh
	case confidence >= 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// PredictedScore is a projected final score
type PredictedScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchPrediction is the outcome of predicting one fixture. It is never updated after creation.
type MatchPrediction struct {
	Fixture            Fixture
	HomeTeam           string
	AwayTeam           string
	HomeWinProbability float64
	AwayWinProbability float64
	WinnerCode         string
	PredictedWinner    string
	Confidence         float64
	ConfidenceLevel    ConfidenceLevel
	PredictedScore     PredictedScore
	KeyFactors         []string
	Reasoning          string
}

// HomeFavored reports whether the home side is the projected winner
func (m MatchPrediction) HomeFavored() bool {
	return m.WinnerCode == m.Fixture.Home
}
