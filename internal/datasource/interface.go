package datasource

import (
	"context"
	"errors"
	"io"
)

// DataSource opens per-division CSV exports from a storage location
type DataSource interface {
	// Open returns a reader over the named division export.
	// A missing export yields an error matching ErrNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Name returns the name of the data source
	Name() string
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error code
func (e DataSourceError) Is(target error) bool {
	sentinel := sentinelForCode(e.Code)
	return sentinel != nil && target == sentinel
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error sentinels
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

func sentinelForCode(code string) error {
	switch code {
	case ErrCodeRateLimitExceeded:
		return ErrRateLimitExceeded
	case ErrCodeAuthenticationFailed:
		return ErrAuthenticationFailed
	case ErrCodeNotFound:
		return ErrNotFound
	case ErrCodeInvalidData:
		return ErrInvalidData
	case ErrCodeNetworkError:
		return ErrNetworkError
	case ErrCodeServerError:
		return ErrServerError
	default:
		return nil
	}
}

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
