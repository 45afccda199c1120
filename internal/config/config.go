// Package config provides configuration management for the Division Oracle batch.
package config

import (
	"time"
)

// Source kinds
const (
	SourceKindFile = "file"
	SourceKindHTTP = "http"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig        `mapstructure:"app" validate:"required"`
	Season    SeasonConfig     `mapstructure:"season" validate:"required"`
	Source    SourceConfig     `mapstructure:"source" validate:"required"`
	Divisions []DivisionConfig `mapstructure:"divisions" validate:"required,min=1,dive"`
	Schedule  ScheduleConfig   `mapstructure:"schedule"`
	Output    OutputConfig     `mapstructure:"output" validate:"required"`
	Server    ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics   MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SeasonConfig describes the season being predicted and the metadata stamped on the snapshot
type SeasonConfig struct {
	Target           string `mapstructure:"target" validate:"required,season"`
	Model            string `mapstructure:"model" validate:"required"`
	Version          string `mapstructure:"version" validate:"required"`
	LastUpdated      string `mapstructure:"last_updated" validate:"required,datetime=2006-01-02"`
	PredictionTarget string `mapstructure:"prediction_target" validate:"required"`
	GlobalAccuracy   string `mapstructure:"global_accuracy"`
	GamesPerSeason   int    `mapstructure:"games_per_season" validate:"required,gt=0"`
}

// SourceConfig selects where division exports are read from
type SourceConfig struct {
	Kind              string  `mapstructure:"kind" validate:"required,oneof=file http"`
	Dir               string  `mapstructure:"dir"`
	BaseURL           string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
}

// DivisionConfig names one division export. Order in the config file is display order.
type DivisionConfig struct {
	Key        string `mapstructure:"key" validate:"required,division"`
	Name       string `mapstructure:"name" validate:"required"`
	Conference string `mapstructure:"conference" validate:"required,oneof=East West"`
	File       string `mapstructure:"file" validate:"required"`
}

// ScheduleConfig holds the fixed fixture list
type ScheduleConfig struct {
	Fixtures []FixtureConfig `mapstructure:"fixtures" validate:"dive"`
}

// FixtureConfig is one scheduled game, teams given by short code
type FixtureConfig struct {
	Away   string `mapstructure:"away" validate:"required"`
	Home   string `mapstructure:"home" validate:"required"`
	Tipoff string `mapstructure:"tipoff" validate:"required"`
}

// OutputConfig represents snapshot output configuration
type OutputConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path" validate:"required"`
}

// ServerConfig represents the snapshot server configuration
type ServerConfig struct {
	Port            int `mapstructure:"port" validate:"required,min=1,max=65535"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// SourceTimeout returns the per-request source timeout
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long the server keeps a snapshot in memory
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}

// MetricsPath returns the metrics endpoint path, defaulting to /metrics
func (c *Config) MetricsPath() string {
	if c.Metrics.Path == "" {
		return "/metrics"
	}
	return c.Metrics.Path
}
