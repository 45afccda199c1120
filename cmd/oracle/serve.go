package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/division-oracle/internal/config"
	"github.com/yourusername/division-oracle/internal/metrics"
	"github.com/yourusername/division-oracle/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the written snapshot with health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(ctx, configFile)
		if err != nil {
			return err
		}

		metrics.InitRegistry()
		return server.NewServer(serverConfig(cfg)).Run(ctx)
	},
}

func serverConfig(cfg *config.Config) server.Config {
	sc := server.Config{
		ServiceName:  cfg.App.Name,
		Version:      Version,
		Commit:       GitCommit,
		Port:         cfg.Server.Port,
		SnapshotPath: cfg.Output.SnapshotPath,
		CacheTTL:     cfg.CacheTTL(),
		Logger:       newLogger(cfg),
	}
	if cfg.Metrics.Enabled {
		sc.MetricsPath = cfg.MetricsPath()
	}
	return sc
}
