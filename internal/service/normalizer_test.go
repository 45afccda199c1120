package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/division-oracle/internal/models"
)

func team(code string, winPct, off, def, prob float64) models.TeamSeasonRecord {
	return models.TeamSeasonRecord{
		Name:               code + " Team",
		Code:               code,
		Season:             "2024-25",
		WinPct:             winPct,
		OffRating:          off,
		DefRating:          def,
		PlayoffProbability: prob,
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{"at min", 100, 100, 120, 0},
		{"at max", 120, 100, 120, 100},
		{"midpoint", 110, 100, 120, 50},
		{"degenerate range", 7, 7, 7, DegenerateScore},
		{"quarter", 0.25, 0, 1, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.value, tt.lo, tt.hi), 1e-9)
		})
	}
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		r     models.Range
		want  float64
		flat  bool
	}{
		{"spread range", 115, models.Range{Min: 110, Max: 120}, 50, false},
		{"flat range", 115, models.Range{Min: 115, Max: 115}, DegenerateScore, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.flat, tt.r.Degenerate())
			assert.InDelta(t, tt.want, NormalizeRange(tt.value, tt.r), 1e-9)
		})
	}
}

func TestComputeExtrema(t *testing.T) {
	teams := []models.TeamSeasonRecord{
		team("AAA", 0.70, 118, 108, 0.9),
		team("BBB", 0.40, 112, 115, 0.3),
		team("CCC", 0.55, 120, 111, 0.6),
	}

	ext, err := ComputeExtrema(teams)
	require.NoError(t, err)
	assert.Equal(t, models.Range{Min: 112, Max: 120}, ext.OffRating)
	assert.Equal(t, models.Range{Min: 108, Max: 115}, ext.DefRating)
	assert.Equal(t, models.Range{Min: 0.40, Max: 0.70}, ext.WinPct)

	_, err = ComputeExtrema(nil)
	assert.ErrorIs(t, err, models.ErrEmptyBatch)
}

func TestCompositeScoreWeights(t *testing.T) {
	ext := models.Extrema{
		OffRating: models.Range{Min: 100, Max: 120},
		DefRating: models.Range{Min: 100, Max: 120},
		WinPct:    models.Range{Min: 0, Max: 1},
	}

	best := CompositeScore(team("BST", 1, 120, 100, 1), ext)
	assert.InDelta(t, 100, best.OffenseScore, 1e-9)
	assert.InDelta(t, 100, best.DefenseScore, 1e-9)
	assert.InDelta(t, 100, best.WinPctScore, 1e-9)
	assert.InDelta(t, 100, best.Overall, 1e-9)

	worst := CompositeScore(team("WST", 0, 100, 120, 0), ext)
	assert.InDelta(t, 0, worst.Overall, 1e-9)

	mixed := CompositeScore(team("MIX", 0.5, 115, 105, 0.5), ext)
	assert.InDelta(t, 75, mixed.OffenseScore, 1e-9)
	assert.InDelta(t, 75, mixed.DefenseScore, 1e-9)
	assert.InDelta(t, 50, mixed.WinPctScore, 1e-9)
	assert.InDelta(t, 0.4*75+0.4*75+0.2*50, mixed.Overall, 1e-9)
	assert.Equal(t, "MIX", mixed.Code)
}

func TestCompositeScoreDefenseIsInverted(t *testing.T) {
	ext := models.Extrema{
		OffRating: models.Range{Min: 100, Max: 120},
		DefRating: models.Range{Min: 100, Max: 120},
		WinPct:    models.Range{Min: 0, Max: 1},
	}
	stingy := CompositeScore(team("STG", 0.5, 110, 104, 0.5), ext)
	leaky := CompositeScore(team("LKY", 0.5, 110, 116, 0.5), ext)

	assert.Greater(t, stingy.DefenseScore, leaky.DefenseScore)
	assert.Greater(t, stingy.Overall, leaky.Overall)
}

func TestCompositeScoreDegenerateBatch(t *testing.T) {
	teams := []models.TeamSeasonRecord{team("ONE", 0.5, 110, 110, 0.5)}
	ext, err := ComputeExtrema(teams)
	require.NoError(t, err)

	scored := NormalizeTeams(teams, ext)
	require.Len(t, scored, 1)
	assert.Equal(t, DegenerateScore, scored[0].OffenseScore)
	assert.Equal(t, DegenerateScore, scored[0].DefenseScore)
	assert.Equal(t, DegenerateScore, scored[0].WinPctScore)
	assert.InDelta(t, DegenerateScore, scored[0].Overall, 1e-9)
}

func TestNormalizeTeamsUsesGlobalExtrema(t *testing.T) {
	east := []models.TeamSeasonRecord{team("E1", 0.6, 115, 110, 0.7)}
	west := []models.TeamSeasonRecord{team("W1", 0.4, 105, 112, 0.2), team("W2", 0.8, 125, 108, 0.9)}

	ext, err := ComputeExtrema(append(append([]models.TeamSeasonRecord{}, east...), west...))
	require.NoError(t, err)

	scored := NormalizeTeams(east, ext)
	assert.InDelta(t, 50, scored[0].OffenseScore, 1e-9)
	assert.InDelta(t, 50, scored[0].WinPctScore, 1e-9)
	assert.InDelta(t, 50, scored[0].DefenseScore, 1e-9)
}
