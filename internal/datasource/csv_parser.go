package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yourusername/division-oracle/internal/models"
)

// Export column names
const (
	ColSeason            = "Season_orig"
	ColTeam              = "Team_orig"
	ColWinPct            = "Win_Pct_orig"
	ColOffRating         = "Off_Rating_orig"
	ColDefRating         = "Def_Rating_orig"
	ColPlayoffProb       = "1_predicted_proba"
	ColMadePlayoffs      = "MadePlayoffs_orig"
	historicalCutoffProb = 0.5
)

var requiredColumns = []string{ColSeason, ColTeam, ColWinPct, ColOffRating, ColDefRating, ColPlayoffProb}

var recordValidator = validator.New()

// ParseResult is everything read from one division export
type ParseResult struct {
	// Current holds target-season records in file order, with history attached
	Current []models.TeamSeasonRecord
	// Seasons lists every season label seen in the file, sorted
	Seasons        []string
	HistoricalRows int
	ShortRows      int
	InvalidRows    int
	DuplicateRows  int
}

// SkippedRows returns the number of rows dropped by the malformed-row policy
func (r *ParseResult) SkippedRows() int {
	return r.ShortRows + r.InvalidRows + r.DuplicateRows
}

// DivisionCSVParser parses division exports
type DivisionCSVParser struct {
	targetSeason string
}

// NewDivisionCSVParser creates a parser that treats targetSeason as the current season
func NewDivisionCSVParser(targetSeason string) *DivisionCSVParser {
	return &DivisionCSVParser{targetSeason: targetSeason}
}

type columnIndex map[string]int

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

// Parse reads one division export. Rows shorter than the header, rows with
// unparseable or out-of-range values, and repeated current-season teams are skipped and counted.
// Only a missing or incomplete header is an error.
func (p *DivisionCSVParser) Parse(r io.Reader, division string) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewDataSourceError("csv", ErrCodeInvalidData, "export is empty", nil)
		}
		return nil, NewDataSourceError("csv", ErrCodeInvalidData, "failed to read header", err)
	}

	cols := make(columnIndex, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	for _, name := range requiredColumns {
		if !cols.has(name) {
			return nil, NewDataSourceError("csv", ErrCodeInvalidData, fmt.Sprintf("missing column %q", name), nil)
		}
	}

	result := &ParseResult{}
	seasons := make(map[string]struct{})
	history := make(map[string][]models.HistoricalSeason)
	currentIdx := make(map[string]int)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.InvalidRows++
			continue
		}
		if len(row) < len(header) {
			result.ShortRows++
			continue
		}

		season := strings.TrimSpace(row[cols[ColSeason]])
		team := strings.Join(strings.Fields(row[cols[ColTeam]]), " ")
		if season == "" || team == "" {
			result.InvalidRows++
			continue
		}

		stats, ok := parseStats(row, cols)
		if !ok {
			result.InvalidRows++
			continue
		}
		seasons[season] = struct{}{}

		if season != p.targetSeason {
			history[team] = append(history[team], models.HistoricalSeason{
				Season:       season,
				WinPct:       stats.winPct,
				OffRating:    stats.offRating,
				DefRating:    stats.defRating,
				MadePlayoffs: madePlayoffs(row, cols, stats.prob),
			})
			result.HistoricalRows++
			continue
		}

		record := models.TeamSeasonRecord{
			Name:               team,
			Code:               TeamCode(team),
			Season:             season,
			Division:           division,
			WinPct:             stats.winPct,
			OffRating:          stats.offRating,
			DefRating:          stats.defRating,
			PlayoffProbability: stats.prob,
		}
		if err := recordValidator.Struct(record); err != nil {
			result.InvalidRows++
			continue
		}
		if _, dup := currentIdx[record.Code]; dup {
			result.DuplicateRows++
			continue
		}
		currentIdx[record.Code] = len(result.Current)
		result.Current = append(result.Current, record)
	}

	for i := range result.Current {
		past := history[result.Current[i].Name]
		sort.SliceStable(past, func(a, b int) bool { return past[a].Season < past[b].Season })
		result.Current[i].History = past
	}

	result.Seasons = make([]string, 0, len(seasons))
	for s := range seasons {
		result.Seasons = append(result.Seasons, s)
	}
	sort.Strings(result.Seasons)

	return result, nil
}

type rowStats struct {
	winPct    float64
	offRating float64
	defRating float64
	prob      float64
}

func parseStats(row []string, cols columnIndex) (rowStats, bool) {
	var s rowStats
	var err error
	if s.winPct, err = parseNumber(row[cols[ColWinPct]]); err != nil {
		return s, false
	}
	if s.offRating, err = parseNumber(row[cols[ColOffRating]]); err != nil {
		return s, false
	}
	if s.defRating, err = parseNumber(row[cols[ColDefRating]]); err != nil {
		return s, false
	}
	if s.prob, err = parseNumber(row[cols[ColPlayoffProb]]); err != nil {
		return s, false
	}
	return s, true
}

// madePlayoffs prefers the recorded outcome and falls back to the model probability
func madePlayoffs(row []string, cols columnIndex, prob float64) bool {
	if cols.has(ColMadePlayoffs) {
		if v, err := parseNumber(row[cols[ColMadePlayoffs]]); err == nil {
			return v == 1
		}
	}
	return prob > historicalCutoffProb
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return v, nil
}
