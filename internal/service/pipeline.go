package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/division-oracle/internal/config"
	"github.com/yourusername/division-oracle/internal/datasource"
	"github.com/yourusername/division-oracle/internal/logger"
	"github.com/yourusername/division-oracle/internal/metrics"
	"github.com/yourusername/division-oracle/internal/models"
)

// BatchConfig is the input of one snapshot batch
type BatchConfig struct {
	TargetSeason string
	Divisions    []DivisionDef
	Fixtures     []models.Fixture
}

// BatchConfigFromConfig builds the batch input from application configuration.
// Fixture codes are upper-cased so they match the team code table.
func BatchConfigFromConfig(cfg *config.Config) BatchConfig {
	bc := BatchConfig{
		TargetSeason: cfg.Season.Target,
		Divisions:    make([]DivisionDef, 0, len(cfg.Divisions)),
		Fixtures:     make([]models.Fixture, 0, len(cfg.Schedule.Fixtures)),
	}
	for _, d := range cfg.Divisions {
		bc.Divisions = append(bc.Divisions, DivisionDef{
			Key:        d.Key,
			Name:       d.Name,
			Conference: d.Conference,
			File:       d.File,
		})
	}
	for _, f := range cfg.Schedule.Fixtures {
		bc.Fixtures = append(bc.Fixtures, models.Fixture{
			Away:   strings.ToUpper(strings.TrimSpace(f.Away)),
			Home:   strings.ToUpper(strings.TrimSpace(f.Home)),
			Tipoff: f.Tipoff,
		})
	}
	return bc
}

// BatchResult is everything the snapshot is built from
type BatchResult struct {
	TargetSeason    string
	Divisions       []models.DivisionGroup
	Matches         []models.MatchPrediction
	SkippedFixtures []models.Fixture
	Extrema         models.Extrema
	// DatasetSeasons is the sorted union of every season seen plus the target
	DatasetSeasons []string
	Stats          *BatchStats
}

// Teams returns every current-season team across ready divisions, in division order
func (r *BatchResult) Teams() []models.NormalizedTeamRecord {
	var teams []models.NormalizedTeamRecord
	for _, g := range r.Divisions {
		teams = append(teams, g.Teams...)
	}
	return teams
}

// Pipeline runs the normalization and prediction batch against a data source
type Pipeline struct {
	source datasource.DataSource
	logger *logger.PipelineLogger
}

// NewPipeline creates a new pipeline reading exports from source
func NewPipeline(source datasource.DataSource, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
	}
	return &Pipeline{
		source: source,
		logger: logger.NewPipelineLogger(log),
	}
}

type divisionLoad struct {
	def    DivisionDef
	teams  []models.TeamSeasonRecord
	reason models.PendingReason
}

// Run executes one batch. Missing or unreadable division exports become
// pending divisions; only context cancellation aborts the run.
func (p *Pipeline) Run(ctx context.Context, cfg BatchConfig) (result *BatchResult, err error) {
	stats := NewBatchStats()
	defer func() {
		stats.Finish()
		teams, pending := 0, 0
		if result != nil {
			teams, pending = stats.Teams, stats.PendingDivisions
		}
		metrics.RecordBatch(stats.Duration.Seconds(), teams, pending, err)
	}()

	parser := datasource.NewDivisionCSVParser(cfg.TargetSeason)
	seasons := map[string]struct{}{cfg.TargetSeason: {}}

	loads := make([]divisionLoad, 0, len(cfg.Divisions))
	var all []models.TeamSeasonRecord
	for _, def := range cfg.Divisions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch cancelled: %w", err)
		}

		load, seen, err := p.loadDivision(ctx, parser, def, stats)
		if err != nil {
			return nil, err
		}
		for _, s := range seen {
			seasons[s] = struct{}{}
		}
		loads = append(loads, load)
		all = append(all, load.teams...)
	}

	// Pass 1: extrema across every division. An empty batch has no extrema and no teams to score.
	ext, err := ComputeExtrema(all)
	if err != nil && !errors.Is(err, models.ErrEmptyBatch) {
		return nil, err
	}

	// Pass 2: score and group, in configured order
	groups := make([]models.DivisionGroup, 0, len(loads))
	for _, load := range loads {
		var group models.DivisionGroup
		if load.reason != models.ReasonNone {
			group = PendingDivision(load.def, load.reason)
		} else {
			group = BuildDivisionGroup(load.def, NormalizeTeams(load.teams, ext))
		}

		strongest := ""
		if group.Analytics != nil {
			strongest = group.Analytics.StrongestTeam
		}
		p.logger.LogDivisionBuilt(group.Key, string(group.Status), len(group.Teams), strongest)
		metrics.RecordDivision(string(group.Status))
		stats.RecordDivision(group.IsPending(), len(group.Teams))
		groups = append(groups, group)
	}

	predictions, skipped := PredictAll(cfg.Fixtures, NewTeamLookup(groups))
	for _, f := range skipped {
		p.logger.LogFixtureSkipped(f.Away, f.Home, f.Tipoff)
		metrics.RecordFixtureSkipped()
	}
	for _, m := range predictions {
		p.logger.LogPrediction(m.Fixture.Away, m.Fixture.Home, m.WinnerCode, m.Confidence, m.Reasoning)
		metrics.RecordPrediction(string(m.ConfidenceLevel))
	}
	stats.RecordFixtures(len(cfg.Fixtures), len(predictions), len(skipped))

	datasetSeasons := make([]string, 0, len(seasons))
	for s := range seasons {
		datasetSeasons = append(datasetSeasons, s)
	}
	sort.Strings(datasetSeasons)

	stats.Finish()
	p.logger.LogBatchCompleted(stats.String(), float64(stats.Duration.Milliseconds()))

	return &BatchResult{
		TargetSeason:    cfg.TargetSeason,
		Divisions:       groups,
		Matches:         predictions,
		SkippedFixtures: skipped,
		Extrema:         ext,
		DatasetSeasons:  datasetSeasons,
		Stats:           stats,
	}, nil
}

// loadDivision opens and parses one division export. Source failures are
// reported through the load's pending reason, not as errors.
func (p *Pipeline) loadDivision(ctx context.Context, parser *datasource.DivisionCSVParser, def DivisionDef, stats *BatchStats) (divisionLoad, []string, error) {
	load := divisionLoad{def: def}

	start := time.Now()
	rc, err := p.source.Open(ctx, def.File)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return load, nil, fmt.Errorf("batch cancelled: %w", ctxErr)
		}
		metrics.RecordSourceFetch(p.source.Name(), "error", time.Since(start).Seconds())
		load.reason = models.ReasonUnreadableSource
		if errors.Is(err, datasource.ErrNotFound) {
			load.reason = models.ReasonMissingSource
		}
		p.logger.LogSourcePending(def.Key, p.source.Name(), string(load.reason), err)
		return load, nil, nil
	}
	defer rc.Close()

	parsed, err := parser.Parse(rc, def.Key)
	metrics.RecordSourceFetch(p.source.Name(), outcome(err), time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return load, nil, fmt.Errorf("batch cancelled: %w", ctxErr)
		}
		load.reason = models.ReasonUnreadableSource
		p.logger.LogSourcePending(def.Key, p.source.Name(), string(load.reason), err)
		return load, nil, nil
	}

	p.logger.LogRowsSkipped(def.Key, parsed.ShortRows, parsed.InvalidRows, parsed.DuplicateRows)
	metrics.RecordRows(def.Key, len(parsed.Current), parsed.ShortRows, parsed.InvalidRows, parsed.DuplicateRows)
	stats.RecordRows(parsed.HistoricalRows, parsed.ShortRows, parsed.InvalidRows, parsed.DuplicateRows)

	load.teams = parsed.Current
	return load, parsed.Seasons, nil
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
