// Package snapshot defines the versioned JSON document published for the widget
// and converts batch results into it.
package snapshot

// SchemaVersion is bumped whenever a field changes meaning or is removed
const SchemaVersion = 3

// Snapshot is the complete published document
type Snapshot struct {
	SchemaVersion    int                 `json:"schema_version"`
	Meta             Meta                `json:"meta"`
	Divisions        map[string]Division `json:"divisions"`
	DivisionOrder    []string            `json:"division_order"`
	Matches          []Match             `json:"matches"`
	PlayoffPredictor PlayoffPredictor    `json:"playoff_predictor"`
}

// Meta describes how and when the snapshot was produced
type Meta struct {
	SnapshotID       string   `json:"snapshot_id"`
	Model            string   `json:"model"`
	Version          string   `json:"version"`
	LastUpdated      string   `json:"last_updated"`
	DatasetSeasons   []string `json:"dataset_seasons"`
	PredictionTarget string   `json:"prediction_target"`
}

// Division is one division table
type Division struct {
	Name          string     `json:"name"`
	Conference    string     `json:"conference"`
	Status        string     `json:"status"`
	PendingReason string     `json:"pending_reason,omitempty"`
	IsComingSoon  bool       `json:"is_coming_soon,omitempty"`
	Teams         []Team     `json:"teams"`
	Analytics     *Analytics `json:"division_analytics,omitempty"`
}

// Analytics is the division summary block
type Analytics struct {
	StrongestTeam    string  `json:"strongest_team"`
	WeakestTeam      string  `json:"weakest_team"`
	PlayoffTeams     int     `json:"playoff_teams"`
	AverageOffRating float64 `json:"average_off_rating"`
	AverageDefRating float64 `json:"average_def_rating"`
	AverageWinPct    float64 `json:"average_win_pct"`
	BestOffense      string  `json:"best_offense"`
	BestDefense      string  `json:"best_defense"`
}

// Team is one row of a division table
type Team struct {
	Team               string           `json:"team"`
	Code               string           `json:"code"`
	Season             string           `json:"season"`
	Stats              TeamStats        `json:"stats"`
	NormalizedScores   NormalizedScores `json:"normalized_scores"`
	PlayoffStatus      string           `json:"playoff_status"`
	PlayoffProbability float64          `json:"playoff_probability"`
	Trend              string           `json:"trend"`
	Historical         []Historical     `json:"historical"`
}

// TeamStats are the raw season numbers
type TeamStats struct {
	WinPct    float64 `json:"win_pct"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	OffRating float64 `json:"off_rating"`
	DefRating float64 `json:"def_rating"`
	NetRating float64 `json:"net_rating"`
}

// NormalizedScores are the 0-100 scores against the batch extrema
type NormalizedScores struct {
	OffensiveScore float64 `json:"offensive_score"`
	DefensiveScore float64 `json:"defensive_score"`
	WinPctScore    float64 `json:"win_pct_score"`
	OverallRating  float64 `json:"overall_rating"`
}

// Historical is one completed season
type Historical struct {
	Season       string  `json:"season"`
	WinPct       float64 `json:"win_pct"`
	OffRating    float64 `json:"off_rating"`
	DefRating    float64 `json:"def_rating"`
	MadePlayoffs bool    `json:"made_playoffs"`
}

// Match is one predicted fixture
type Match struct {
	MatchID    string     `json:"match_id"`
	Tipoff     string     `json:"tipoff"`
	HomeTeam   string     `json:"home_team"`
	AwayTeam   string     `json:"away_team"`
	HomeCode   string     `json:"home_code"`
	AwayCode   string     `json:"away_code"`
	Prediction Prediction `json:"prediction"`
	Analysis   Analysis   `json:"ai_analysis"`
}

// Prediction carries the projected outcome of a match
type Prediction struct {
	HomeWinProbability float64        `json:"home_win_probability"`
	AwayWinProbability float64        `json:"away_win_probability"`
	PredictedWinner    string         `json:"predicted_winner"`
	Confidence         float64        `json:"confidence"`
	ConfidenceLevel    string         `json:"confidence_level"`
	PredictedScore     PredictedScore `json:"predicted_score"`
}

// PredictedScore is the projected final score
type PredictedScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Analysis explains a prediction
type Analysis struct {
	KeyFactors []string `json:"key_factors"`
	Reasoning  string   `json:"reasoning"`
}

// PlayoffPredictor is the league-wide playoff probability leaderboard
type PlayoffPredictor struct {
	OracleMetadata OracleMetadata     `json:"oracle_metadata"`
	Teams          []LeaderboardEntry `json:"teams"`
}

// OracleMetadata labels the leaderboard
type OracleMetadata struct {
	GlobalAccuracy string `json:"global_accuracy"`
	Model          string `json:"model"`
}

// LeaderboardEntry is one team on the leaderboard
type LeaderboardEntry struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	WinProb float64 `json:"win_prob"`
}

// Division returns the named division and whether it exists
func (s *Snapshot) Division(key string) (Division, bool) {
	d, ok := s.Divisions[key]
	return d, ok
}
