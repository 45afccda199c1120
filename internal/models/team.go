package models

import "math"

// PlayoffStatus is the three-tier playoff classification of a team
type PlayoffStatus string

const (
	StatusClinched   PlayoffStatus = "clinched"
	StatusContender  PlayoffStatus = "contender"
	StatusEliminated PlayoffStatus = "eliminated"
)

// Playoff probability thresholds (inclusive lower bounds)
const (
	ClinchedThreshold  = 0.8
	ContenderThreshold = 0.2
)

// ClassifyPlayoffStatus maps a playoff probability onto a PlayoffStatus
func ClassifyPlayoffStatus(probability float64) PlayoffStatus {
	switch {
	case probability >= ClinchedThreshold:
		return StatusClinched
	case probability >= ContenderThreshold:
		return StatusContender
	default:
		return StatusEliminated
	}
}

// Trend describes the direction of a team's win percentage against its previous season
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendSteady Trend = "steady"
)

// trendBand is the win percentage change below which a team is considered steady
const trendBand = 0.03

// HistoricalSeason is a completed season carried as context for a team
type HistoricalSeason struct {
	Season       string  `json:"season"`
	WinPct       float64 `json:"win_pct"`
	OffRating    float64 `json:"off_rating"`
	DefRating    float64 `json:"def_rating"`
	MadePlayoffs bool    `json:"made_playoffs"`
}

// TeamSeasonRecord is one team's raw statistics for the target season
type TeamSeasonRecord struct {
	Name               string             `json:"team" validate:"required"`
	Code               string             `json:"code" validate:"required"`
	Season             string             `json:"season" validate:"required"`
	Division           string             `json:"division"`
	WinPct             float64            `json:"win_pct" validate:"gte=0,lte=1"`
	OffRating          float64            `json:"off_rating"`
	DefRating          float64            `json:"def_rating"`
	PlayoffProbability float64            `json:"playoff_probability" validate:"gte=0,lte=1"`
	History            []HistoricalSeason `json:"historical"`
}

// NetRating returns offensive minus defensive rating
func (t TeamSeasonRecord) NetRating() float64 {
	return t.OffRating - t.DefRating
}

// PlayoffStatus classifies the team from its playoff probability
func (t TeamSeasonRecord) PlayoffStatus() PlayoffStatus {
	return ClassifyPlayoffStatus(t.PlayoffProbability)
}

// Trend compares the current win percentage with the most recent historical season.
// History is expected to be sorted by season ascending.
func (t TeamSeasonRecord) Trend() Trend {
	if len(t.History) == 0 {
		return TrendSteady
	}
	delta := t.WinPct - t.History[len(t.History)-1].WinPct
	switch {
	case delta > trendBand:
		return TrendUp
	case delta < -trendBand:
		return TrendDown
	default:
		return TrendSteady
	}
}

// Record splits the win percentage into wins and losses over a season of the given length
func (t TeamSeasonRecord) Record(gamesPerSeason int) (wins, losses int) {
	if gamesPerSeason <= 0 {
		return 0, 0
	}
	wins = int(math.Round(t.WinPct * float64(gamesPerSeason)))
	return wins, gamesPerSeason - wins
}

// Range is the closed interval a metric spans within a batch
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Degenerate reports whether every team in the batch shares the same value
func (r Range) Degenerate() bool {
	return r.Min == r.Max
}

// Extrema holds the global minimum and maximum of each normalized metric in a batch
type Extrema struct {
	OffRating Range `json:"off_rating"`
	DefRating Range `json:"def_rating"`
	WinPct    Range `json:"win_pct"`
}

// NormalizedTeamRecord is a TeamSeasonRecord scored against the batch extrema.
// Scores are kept at full precision; rounding belongs to the output boundary.
type NormalizedTeamRecord struct {
	TeamSeasonRecord
	OffenseScore float64 `json:"offensive_score"`
	DefenseScore float64 `json:"defensive_score"`
	WinPctScore  float64 `json:"win_pct_score"`
	Overall      float64 `json:"overall_rating"`
}
