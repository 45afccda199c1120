package service

import (
	"sort"

	"github.com/yourusername/division-oracle/internal/models"
)

// DivisionDef identifies a division and where its export lives
type DivisionDef struct {
	Key        string
	Name       string
	Conference string
	File       string
}

// RankTeams returns a copy of teams ordered by playoff probability, best first.
// Ties keep input order.
func RankTeams(teams []models.NormalizedTeamRecord) []models.NormalizedTeamRecord {
	ranked := make([]models.NormalizedTeamRecord, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PlayoffProbability > ranked[j].PlayoffProbability
	})
	return ranked
}

// ComputeDivisionAnalytics derives analytics from an already ranked team list.
// It returns nil for an empty list.
func ComputeDivisionAnalytics(ranked []models.NormalizedTeamRecord) *models.DivisionAnalytics {
	if len(ranked) == 0 {
		return nil
	}

	var sumOff, sumDef, sumWin float64
	playoffTeams := 0
	bestOff, bestDef := ranked[0], ranked[0]
	for _, t := range ranked {
		sumOff += t.OffRating
		sumDef += t.DefRating
		sumWin += t.WinPct
		if t.PlayoffStatus() == models.StatusClinched {
			playoffTeams++
		}
		if t.OffRating > bestOff.OffRating {
			bestOff = t
		}
		if t.DefRating < bestDef.DefRating {
			bestDef = t
		}
	}

	n := float64(len(ranked))
	return &models.DivisionAnalytics{
		StrongestTeam:    ranked[0].Name,
		WeakestTeam:      ranked[len(ranked)-1].Name,
		PlayoffTeams:     playoffTeams,
		AverageOffRating: sumOff / n,
		AverageDefRating: sumDef / n,
		AverageWinPct:    sumWin / n,
		BestOffense:      bestOff.Name,
		BestDefense:      bestDef.Name,
	}
}

// BuildDivisionGroup ranks the division's normalized teams and derives its analytics.
// An empty team list yields a pending group.
func BuildDivisionGroup(def DivisionDef, teams []models.NormalizedTeamRecord) models.DivisionGroup {
	if len(teams) == 0 {
		return PendingDivision(def, models.ReasonNoCurrentSeason)
	}
	ranked := RankTeams(teams)
	return models.DivisionGroup{
		Key:        def.Key,
		Name:       def.Name,
		Conference: def.Conference,
		Status:     models.DivisionReady,
		Teams:      ranked,
		Analytics:  ComputeDivisionAnalytics(ranked),
	}
}

// PendingDivision returns the placeholder group for a division that could not be computed
func PendingDivision(def DivisionDef, reason models.PendingReason) models.DivisionGroup {
	return models.DivisionGroup{
		Key:           def.Key,
		Name:          def.Name,
		Conference:    def.Conference,
		Status:        models.DivisionPending,
		PendingReason: reason,
		Teams:         []models.NormalizedTeamRecord{},
	}
}
