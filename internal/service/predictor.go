package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/division-oracle/internal/models"
)

// Reasoning labels
const (
	FactorDominant  = "Dominant Season Performance"
	FactorTight     = "Tight Matchup – Edge via Efficiency"
	FactorFallback  = "Overall Win Probability"
	factorSeparator = " & "
	maxFactors      = 2
	dominantGap     = 20.0
	tightGap        = 5.0
)

// TeamLookup resolves a team's short code to its current-season record
type TeamLookup map[string]models.TeamSeasonRecord

// NewTeamLookup indexes the teams of every ready division by code.
// The first occurrence of a code wins.
func NewTeamLookup(groups []models.DivisionGroup) TeamLookup {
	lookup := make(TeamLookup)
	for _, g := range groups {
		for _, t := range g.Teams {
			if _, exists := lookup[t.Code]; !exists {
				lookup[t.Code] = t.TeamSeasonRecord
			}
		}
	}
	return lookup
}

// Predict projects a single fixture. ok is false when either participant is not in the batch.
func Predict(fixture models.Fixture, lookup TeamLookup) (prediction models.MatchPrediction, ok bool) {
	home, found := lookup[fixture.Home]
	if !found {
		return models.MatchPrediction{}, false
	}
	away, found := lookup[fixture.Away]
	if !found {
		return models.MatchPrediction{}, false
	}

	// Season win percentage is the head-to-head strength metric. The playoff
	// probability describes the whole season, not a single game.
	homeShare, awayShare := WinShares(home.WinPct, away.WinPct)

	winner, loser := home, away
	if awayShare > homeShare {
		winner, loser = away, home
	}
	confidence := math.Abs(homeShare-awayShare) * 100

	factors, reasoning := SelectReasoning(ReasoningCandidates(winner, loser, confidence))

	return models.MatchPrediction{
		Fixture:            fixture,
		HomeTeam:           home.Name,
		AwayTeam:           away.Name,
		HomeWinProbability: homeShare,
		AwayWinProbability: awayShare,
		WinnerCode:         winner.Code,
		PredictedWinner:    winner.Name,
		Confidence:         confidence,
		ConfidenceLevel:    models.ClassifyConfidence(confidence),
		PredictedScore:     projectScore(home, away, winner.Code == home.Code),
		KeyFactors:         factors,
		Reasoning:          reasoning,
	}, true
}

// PredictAll predicts every fixture in schedule order and returns the fixtures that were skipped
func PredictAll(fixtures []models.Fixture, lookup TeamLookup) (predictions []models.MatchPrediction, skipped []models.Fixture) {
	predictions = make([]models.MatchPrediction, 0, len(fixtures))
	for _, f := range fixtures {
		p, ok := Predict(f, lookup)
		if !ok {
			skipped = append(skipped, f)
			continue
		}
		predictions = append(predictions, p)
	}
	return predictions, skipped
}

// WinShares splits a pair of strengths into shares that sum to one.
// Two zero strengths split evenly.
func WinShares(a, b float64) (shareA, shareB float64) {
	total := a + b
	if total <= 0 {
		return 0.5, 0.5
	}
	shareA = a / total
	return shareA, 1 - shareA
}

// ReasoningCandidates lists every explanatory factor that applies, in declaration order.
// gap is the winner's probability edge in percentage points.
func ReasoningCandidates(winner, loser models.TeamSeasonRecord, gap float64) []string {
	var candidates []string
	if winner.OffRating > loser.OffRating {
		candidates = append(candidates, "Superior Offense (+"+oneDecimal(winner.OffRating-loser.OffRating)+" Rtg)")
	}
	if winner.DefRating < loser.DefRating {
		candidates = append(candidates, "Stronger Defense (−"+oneDecimal(loser.DefRating-winner.DefRating)+" Rtg)")
	}
	if gap > dominantGap {
		candidates = append(candidates, FactorDominant)
	} else if gap < tightGap {
		candidates = append(candidates, FactorTight)
	}
	return candidates
}

// SelectReasoning keeps the first two candidates and joins them into the reasoning string
func SelectReasoning(candidates []string) (factors []string, reasoning string) {
	if len(candidates) == 0 {
		return []string{FactorFallback}, FactorFallback
	}
	if len(candidates) > maxFactors {
		candidates = candidates[:maxFactors]
	}
	factors = make([]string, len(candidates))
	copy(factors, candidates)
	return factors, strings.Join(factors, factorSeparator)
}

// projectScore estimates points as the mean of a side's offensive rating and the
// opponent's defensive rating, then keeps the projected winner ahead.
func projectScore(home, away models.TeamSeasonRecord, homeWins bool) models.PredictedScore {
	score := models.PredictedScore{
		Home: int(math.Round((home.OffRating + away.DefRating) / 2)),
		Away: int(math.Round((away.OffRating + home.DefRating) / 2)),
	}
	if homeWins && score.Home <= score.Away {
		score.Home = score.Away + 1
	}
	if !homeWins && score.Away <= score.Home {
		score.Away = score.Home + 1
	}
	return score
}

func oneDecimal(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
