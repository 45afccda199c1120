package datasource

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/division-oracle/internal/models"
)

func parseFixture(t *testing.T, path string) *ParseResult {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	result, err := ParseDivisionCSV(f, "atlantic", "2024-25")
	require.NoError(t, err)
	return result
}

func TestParseDivisionCSVCurrentSeason(t *testing.T) {
	result := parseFixture(t, "testdata/atlantic.csv")

	require.Len(t, result.Current, 5)
	codes := make([]string, 0, len(result.Current))
	for _, r := range result.Current {
		codes = append(codes, r.Code)
		assert.Equal(t, "2024-25", r.Season)
		assert.Equal(t, "atlantic", r.Division)
	}
	assert.Equal(t, []string{"BOS", "NYK", "PHI", "BKN", "TOR"}, codes)

	bos := result.Current[0]
	assert.Equal(t, "Boston Celtics", bos.Name)
	assert.InDelta(t, 0.72, bos.WinPct, 1e-9)
	assert.InDelta(t, 120.1, bos.OffRating, 1e-9)
	assert.InDelta(t, 110.2, bos.DefRating, 1e-9)
	assert.InDelta(t, 0.95, bos.PlayoffProbability, 1e-9)
}

func TestParseDivisionCSVSkipsMalformedRows(t *testing.T) {
	result := parseFixture(t, "testdata/atlantic.csv")

	assert.Equal(t, 1, result.ShortRows)
	assert.Equal(t, 2, result.InvalidRows)
	assert.Equal(t, 1, result.DuplicateRows)
	assert.Equal(t, 4, result.SkippedRows())
	assert.Equal(t, 4, result.HistoricalRows)
}

func TestParseDivisionCSVHistory(t *testing.T) {
	result := parseFixture(t, "testdata/atlantic.csv")

	assert.Equal(t, []string{"2022-23", "2023-24", "2024-25"}, result.Seasons)

	nyk := result.Current[1]
	require.Len(t, nyk.History, 2)
	assert.Equal(t, "2022-23", nyk.History[0].Season)
	assert.Equal(t, "2023-24", nyk.History[1].Season)
	assert.True(t, nyk.History[1].MadePlayoffs)

	bos := result.Current[0]
	require.Len(t, bos.History, 2)
	assert.Equal(t, models.TrendDown, bos.Trend())

	assert.Empty(t, result.Current[2].History)
}

func TestParseDivisionCSVMadePlayoffsFallsBackToProbability(t *testing.T) {
	data := strings.Join([]string{
		"Season_orig,Team_orig,Win_Pct_orig,Off_Rating_orig,Def_Rating_orig,1_predicted_proba",
		"2023-24,Denver Nuggets,0.695,118.0,112.0,0.62",
		"2022-23,Denver Nuggets,0.646,117.0,113.0,0.40",
		"2024-25,Denver Nuggets,0.610,117.5,113.5,0.74",
	}, "\n")

	result, err := ParseDivisionCSV(strings.NewReader(data), "northwest", "2024-25")
	require.NoError(t, err)
	require.Len(t, result.Current, 1)

	history := result.Current[0].History
	require.Len(t, history, 2)
	assert.False(t, history[0].MadePlayoffs)
	assert.True(t, history[1].MadePlayoffs)
	assert.Equal(t, "DEN", result.Current[0].Code)
}

func TestParseDivisionCSVHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"missing columns", "Team_orig,Win_Pct_orig\nBoston Celtics,0.7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDivisionCSV(strings.NewReader(tt.data), "atlantic", "2024-25")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidData))
		})
	}
}

func TestParseDivisionCSVNoCurrentSeason(t *testing.T) {
	data := "Season_orig,Team_orig,Win_Pct_orig,Off_Rating_orig,Def_Rating_orig,1_predicted_proba\n" +
		"2023-24,Utah Jazz,0.378,112.0,118.0,0.05\n"

	result, err := ParseDivisionCSV(strings.NewReader(data), "northwest", "2024-25")
	require.NoError(t, err)
	assert.Empty(t, result.Current)
	assert.Equal(t, []string{"2023-24"}, result.Seasons)
}

func TestParseDivisionCSVToleratesBOMAndReorderedColumns(t *testing.T) {
	data := "\ufeff1_predicted_proba,Def_Rating_orig,Off_Rating_orig,Win_Pct_orig,Team_orig,Season_orig\n" +
		"0.5,112.0,113.0,0.5,  Miami   Heat ,2024-25\n"

	result, err := ParseDivisionCSV(strings.NewReader(data), "southeast", "2024-25")
	require.NoError(t, err)
	require.Len(t, result.Current, 1)
	assert.Equal(t, "Miami Heat", result.Current[0].Name)
	assert.Equal(t, "MIA", result.Current[0].Code)
	assert.InDelta(t, 113.0, result.Current[0].OffRating, 1e-9)
}

func TestParseDivisionCSVRejectsNonFiniteNumbers(t *testing.T) {
	header := "Season_orig,Team_orig,Win_Pct_orig,Off_Rating_orig,Def_Rating_orig,1_predicted_proba\n"
	tests := []struct {
		name string
		row  string
	}{
		{"inf offense", "2024-25,Boston Celtics,0.7,Inf,108,0.9\n"},
		{"signed inf defense", "2024-25,Boston Celtics,0.7,118,+Inf,0.9\n"},
		{"negative infinity", "2024-25,Boston Celtics,0.7,-Infinity,108,0.9\n"},
		{"nan win pct", "2024-25,Boston Celtics,NaN,118,108,0.9\n"},
		{"inf in history", "2023-24,Boston Celtics,0.7,118,inf,0.9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDivisionCSV(strings.NewReader(header+tt.row), "atlantic", "2024-25")
			require.NoError(t, err)
			assert.Empty(t, result.Current)
			assert.Zero(t, result.HistoricalRows)
			assert.Equal(t, 1, result.InvalidRows)
		})
	}
}
