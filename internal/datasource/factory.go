package datasource

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/division-oracle/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// FileSourceType reads exports from a local directory
	FileSourceType SourceType = config.SourceKindFile
	// HTTPSourceType downloads exports from a remote host
	HTTPSourceType SourceType = config.SourceKindHTTP
)

// NewDataSource creates the DataSource selected by configuration
func NewDataSource(cfg config.SourceConfig, logger *logrus.Logger) (DataSource, error) {
	switch SourceType(cfg.Kind) {
	case FileSourceType:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file source requires a directory")
		}
		return NewFileSource(cfg.Dir), nil

	case HTTPSourceType:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("http source requires a base URL")
		}
		return NewHTTPSource(NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), logger), cfg.BaseURL, cfg.APIKey), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", cfg.Kind)
	}
}

// HTTPClientConfigFrom overlays configured knobs on the client defaults
func HTTPClientConfigFrom(cfg config.SourceConfig) HTTPClientConfig {
	out := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		out.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxRetries > 0 {
		out.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		out.RateLimit = cfg.RateLimit
	}
	if cfg.CircuitBreakerMax > 0 {
		out.CircuitBreakerMax = cfg.CircuitBreakerMax
	}
	return out
}

// ParseDivisionCSV parses one division export, keeping targetSeason rows as current records
func ParseDivisionCSV(r io.Reader, division, targetSeason string) (*ParseResult, error) {
	return NewDivisionCSVParser(targetSeason).Parse(r, division)
}
