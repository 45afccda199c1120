package service

import (
	"github.com/yourusername/division-oracle/internal/models"
)

// Composite weights for the overall rating
const (
	OffenseWeight = 0.4
	DefenseWeight = 0.4
	WinPctWeight  = 0.2
)

// DegenerateScore is returned for a metric on which every team in the batch is identical
const DegenerateScore = 50.0

// Normalize rescales value onto 0-100 against [min, max]
func Normalize(value, min, max float64) float64 {
	if min == max {
		return DegenerateScore
	}
	return ((value - min) / (max - min)) * 100
}

// NormalizeRange rescales value onto 0-100 against a batch range
func NormalizeRange(value float64, r models.Range) float64 {
	if r.Degenerate() {
		return DegenerateScore
	}
	return Normalize(value, r.Min, r.Max)
}

// ComputeExtrema is the first normalization pass: the global extrema of every
// scored metric across all current-season teams in the batch.
func ComputeExtrema(teams []models.TeamSeasonRecord) (models.Extrema, error) {
	if len(teams) == 0 {
		return models.Extrema{}, models.ErrEmptyBatch
	}

	first := teams[0]
	ext := models.Extrema{
		OffRating: models.Range{Min: first.OffRating, Max: first.OffRating},
		DefRating: models.Range{Min: first.DefRating, Max: first.DefRating},
		WinPct:    models.Range{Min: first.WinPct, Max: first.WinPct},
	}
	for _, t := range teams[1:] {
		ext.OffRating = widen(ext.OffRating, t.OffRating)
		ext.DefRating = widen(ext.DefRating, t.DefRating)
		ext.WinPct = widen(ext.WinPct, t.WinPct)
	}
	return ext, nil
}

func widen(r models.Range, v float64) models.Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// CompositeScore is the second normalization pass for a single team.
// Defense is inverted because a lower defensive rating is better.
func CompositeScore(team models.TeamSeasonRecord, ext models.Extrema) models.NormalizedTeamRecord {
	off := NormalizeRange(team.OffRating, ext.OffRating)
	def := 100 - NormalizeRange(team.DefRating, ext.DefRating)
	win := NormalizeRange(team.WinPct, ext.WinPct)

	return models.NormalizedTeamRecord{
		TeamSeasonRecord: team,
		OffenseScore:     off,
		DefenseScore:     def,
		WinPctScore:      win,
		Overall:          off*OffenseWeight + def*DefenseWeight + win*WinPctWeight,
	}
}

// NormalizeTeams scores every team against the same extrema, preserving order
func NormalizeTeams(teams []models.TeamSeasonRecord, ext models.Extrema) []models.NormalizedTeamRecord {
	out := make([]models.NormalizedTeamRecord, 0, len(teams))
	for _, t := range teams {
		out = append(out, CompositeScore(t, ext))
	}
	return out
}
