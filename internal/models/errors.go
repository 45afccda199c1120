package models

import "errors"

// Custom errors
var (
	ErrEmptyBatch = errors.New("batch contains no current-season teams")
)
