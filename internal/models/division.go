package models

// DivisionStatus marks whether a division could be computed in this batch
type DivisionStatus string

const (
	DivisionReady   DivisionStatus = "ready"
	DivisionPending DivisionStatus = "pending"
)

// PendingReason explains why a division is pending
type PendingReason string

const (
	ReasonNone             PendingReason = ""
	ReasonMissingSource    PendingReason = "missing_source"
	ReasonUnreadableSource PendingReason = "unreadable_source"
	ReasonNoCurrentSeason  PendingReason = "no_current_season_rows"
)

// DivisionAnalytics is derived from the ranked membership of a division
type DivisionAnalytics struct {
	StrongestTeam    string  `json:"strongest_team"`
	WeakestTeam      string  `json:"weakest_team"`
	PlayoffTeams     int     `json:"playoff_teams"`
	AverageOffRating float64 `json:"average_off_rating"`
	AverageDefRating float64 `json:"average_def_rating"`
	AverageWinPct    float64 `json:"average_win_pct"`
	BestOffense      string  `json:"best_offense"`
	BestDefense      string  `json:"best_defense"`
}

// DivisionGroup is a division's ranked teams and their analytics.
// Analytics is nil exactly when the group is pending.
type DivisionGroup struct {
	Key           string                 `json:"key"`
	Name          string                 `json:"name"`
	Conference    string                 `json:"conference"`
	Status        DivisionStatus         `json:"status"`
	PendingReason PendingReason          `json:"pending_reason,omitempty"`
	Teams         []NormalizedTeamRecord `json:"teams"`
	Analytics     *DivisionAnalytics     `json:"division_analytics,omitempty"`
}

// IsPending reports whether the division has no computed membership
func (g DivisionGroup) IsPending() bool {
	return g.Status == DivisionPending
}
