package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/division-oracle/internal/config"
	"github.com/yourusername/division-oracle/internal/datasource"
	"github.com/yourusername/division-oracle/internal/logger"
	"github.com/yourusername/division-oracle/internal/metrics"
	"github.com/yourusername/division-oracle/internal/service"
	"github.com/yourusername/division-oracle/internal/snapshot"
)

var outputPath string

func init() {
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Override the snapshot output path")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the batch and write the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(ctx, configFile)
		if err != nil {
			return err
		}
		if outputPath != "" {
			cfg.Output.SnapshotPath = outputPath
		}

		metrics.InitRegistry()
		snap, result, err := runBuild(ctx, cfg, newLogger(cfg))
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), cfg.Output.SnapshotPath, snap, result)
		return nil
	},
}

// runBuild executes the batch against the configured source and writes the snapshot
func runBuild(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*snapshot.Snapshot, *service.BatchResult, error) {
	source, err := datasource.NewDataSource(cfg.Source, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create data source: %w", err)
	}

	result, err := service.NewPipeline(source, log).Run(ctx, service.BatchConfigFromConfig(cfg))
	if err != nil {
		return nil, nil, err
	}

	snap := snapshot.NewBuilder(snapshot.OptionsFromConfig(cfg.Season)).Build(result)
	if err := snapshot.Write(cfg.Output.SnapshotPath, snap); err != nil {
		return nil, nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.NewPipelineLogger(log).LogSnapshotWritten(cfg.Output.SnapshotPath, snap.Meta.SnapshotID, len(snap.Divisions), len(snap.Matches))
	return snap, result, nil
}

func printSummary(w io.Writer, path string, snap *snapshot.Snapshot, result *service.BatchResult) {
	fmt.Fprintf(w, "Snapshot %s written to %s\n", snap.Meta.SnapshotID, path)
	for _, key := range snap.DivisionOrder {
		div := snap.Divisions[key]
		if div.PendingReason != "" {
			fmt.Fprintf(w, "  %-10s %-8s (%s)\n", key, div.Status, div.PendingReason)
			continue
		}
		fmt.Fprintf(w, "  %-10s %-8s %d teams\n", key, div.Status, len(div.Teams))
	}
	fmt.Fprintf(w, "  matches: %d predicted, %d skipped\n", len(snap.Matches), len(result.SkippedFixtures))
	fmt.Fprintf(w, "  %s\n", result.Stats)
}
