package snapshot

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/division-oracle/internal/config"
	"github.com/yourusername/division-oracle/internal/models"
	"github.com/yourusername/division-oracle/internal/service"
)

// namespace scopes every name-based ID in the snapshot
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://division-oracle/snapshot"))

// Options carries the metadata stamped onto a snapshot
type Options struct {
	Model            string
	Version          string
	LastUpdated      string
	PredictionTarget string
	GlobalAccuracy   string
	GamesPerSeason   int
}

// OptionsFromConfig reads snapshot metadata from the season configuration
func OptionsFromConfig(cfg config.SeasonConfig) Options {
	return Options{
		Model:            cfg.Model,
		Version:          cfg.Version,
		LastUpdated:      cfg.LastUpdated,
		PredictionTarget: cfg.PredictionTarget,
		GlobalAccuracy:   cfg.GlobalAccuracy,
		GamesPerSeason:   cfg.GamesPerSeason,
	}
}

// Builder converts batch results into snapshots
type Builder struct {
	opts Options
}

// NewBuilder creates a builder with the given metadata
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build assembles the snapshot. Every output value is rounded here and nowhere else.
func (b *Builder) Build(result *service.BatchResult) *Snapshot {
	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		Meta: Meta{
			SnapshotID:       b.snapshotID(result),
			Model:            b.opts.Model,
			Version:          b.opts.Version,
			LastUpdated:      b.opts.LastUpdated,
			DatasetSeasons:   append([]string{}, result.DatasetSeasons...),
			PredictionTarget: b.opts.PredictionTarget,
		},
		Divisions:     make(map[string]Division, len(result.Divisions)),
		DivisionOrder: make([]string, 0, len(result.Divisions)),
		Matches:       make([]Match, 0, len(result.Matches)),
		PlayoffPredictor: PlayoffPredictor{
			OracleMetadata: OracleMetadata{
				GlobalAccuracy: b.opts.GlobalAccuracy,
				Model:          b.opts.Model,
			},
			Teams: b.leaderboard(result.Teams()),
		},
	}

	for _, g := range result.Divisions {
		snap.Divisions[g.Key] = b.division(g)
		snap.DivisionOrder = append(snap.DivisionOrder, g.Key)
	}
	for _, m := range result.Matches {
		snap.Matches = append(snap.Matches, match(m))
	}
	return snap
}

func (b *Builder) division(g models.DivisionGroup) Division {
	d := Division{
		Name:          g.Name,
		Conference:    g.Conference,
		Status:        string(g.Status),
		PendingReason: string(g.PendingReason),
		IsComingSoon:  g.IsPending(),
		Teams:         make([]Team, 0, len(g.Teams)),
	}
	for _, t := range g.Teams {
		d.Teams = append(d.Teams, b.team(t))
	}
	if a := g.Analytics; a != nil {
		d.Analytics = &Analytics{
			StrongestTeam:    a.StrongestTeam,
			WeakestTeam:      a.WeakestTeam,
			PlayoffTeams:     a.PlayoffTeams,
			AverageOffRating: roundScore(a.AverageOffRating),
			AverageDefRating: roundScore(a.AverageDefRating),
			AverageWinPct:    roundWinPct(a.AverageWinPct),
			BestOffense:      a.BestOffense,
			BestDefense:      a.BestDefense,
		}
	}
	return d
}

func (b *Builder) team(t models.NormalizedTeamRecord) Team {
	wins, losses := t.Record(b.opts.GamesPerSeason)
	out := Team{
		Team:   t.Name,
		Code:   t.Code,
		Season: t.Season,
		Stats: TeamStats{
			WinPct:    roundWinPct(t.WinPct),
			Wins:      wins,
			Losses:    losses,
			OffRating: roundScore(t.OffRating),
			DefRating: roundScore(t.DefRating),
			NetRating: roundScore(t.NetRating()),
		},
		NormalizedScores: NormalizedScores{
			OffensiveScore: roundScore(t.OffenseScore),
			DefensiveScore: roundScore(t.DefenseScore),
			WinPctScore:    roundScore(t.WinPctScore),
			OverallRating:  roundScore(t.Overall),
		},
		PlayoffStatus:      string(t.PlayoffStatus()),
		PlayoffProbability: roundProbability(t.PlayoffProbability),
		Trend:              string(t.Trend()),
		Historical:         make([]Historical, 0, len(t.History)),
	}
	for _, h := range t.History {
		out.Historical = append(out.Historical, Historical{
			Season:       h.Season,
			WinPct:       roundWinPct(h.WinPct),
			OffRating:    roundScore(h.OffRating),
			DefRating:    roundScore(h.DefRating),
			MadePlayoffs: h.MadePlayoffs,
		})
	}
	return out
}

func match(m models.MatchPrediction) Match {
	factors := append([]string{}, m.KeyFactors...)
	return Match{
		MatchID:  MatchID(m.Fixture),
		Tipoff:   m.Fixture.Tipoff,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		HomeCode: m.Fixture.Home,
		AwayCode: m.Fixture.Away,
		Prediction: Prediction{
			HomeWinProbability: roundProbability(m.HomeWinProbability),
			AwayWinProbability: roundProbability(m.AwayWinProbability),
			PredictedWinner:    m.PredictedWinner,
			Confidence:         roundScore(m.Confidence),
			ConfidenceLevel:    string(m.ConfidenceLevel),
			PredictedScore: PredictedScore{
				Home: m.PredictedScore.Home,
				Away: m.PredictedScore.Away,
			},
		},
		Analysis: Analysis{
			KeyFactors: factors,
			Reasoning:  m.Reasoning,
		},
	}
}

// leaderboard ranks every current-season team by playoff probability; ties keep division order
func (b *Builder) leaderboard(teams []models.NormalizedTeamRecord) []LeaderboardEntry {
	ranked := service.RankTeams(teams)
	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, t := range ranked {
		entries = append(entries, LeaderboardEntry{
			ID:      t.Code,
			Name:    t.Name,
			WinProb: roundProbability(t.PlayoffProbability),
		})
	}
	return entries
}

// snapshotID is derived from the inputs so identical batches share an ID
func (b *Builder) snapshotID(result *service.BatchResult) string {
	codes := make([]string, 0)
	for _, t := range result.Teams() {
		codes = append(codes, t.Code)
	}
	sort.Strings(codes)
	name := strings.Join([]string{result.TargetSeason, b.opts.LastUpdated, strings.Join(codes, ",")}, "|")
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// MatchID returns the stable ID of a fixture
func MatchID(f models.Fixture) string {
	return uuid.NewSHA1(namespace, []byte(f.Key())).String()
}
