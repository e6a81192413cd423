package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmptyUserID is returned when no user is specified for the run.
	ErrEmptyUserID = errors.New("user ID required")
)
