package notion

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingToken indicates the client was created without an access token.
	ErrMissingToken = errors.New("notion: access token required")
)

// APIError represents a non-success response from the Notion API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: API error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// RateLimitError indicates the remote rejected a call with 429.
// It is transient and retried with backoff, honoring RetryAfter.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("notion: rate limit exceeded, retry after %s", e.RetryAfter)
}

// FetchError is a typed fetch failure scoped to a single page or block
// subtree. It never aborts sibling pages; the coordinator records it in
// the run summary and moves on.
type FetchError struct {
	PageID string
	Op     string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("notion: %s for page %s: %v", e.Op, e.PageID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRateLimited checks if the error indicates remote rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// isTransient reports whether an error is worth retrying: rate-limit
// rejections, 5xx responses, and transport-level failures.
func isTransient(err error) bool {
	if IsRateLimited(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Anything that is not an API error came from the transport layer
	// (timeouts, connection resets, DNS failures).
	return !errors.As(err, &apiErr)
}
