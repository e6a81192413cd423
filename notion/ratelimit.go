package notion

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the published Notion API ceiling.
const DefaultRequestsPerSecond = 3

// RateLimiter throttles outbound API calls to a fixed ceiling per second.
// It is safe for concurrent callers; the only failure mode is context
// cancellation while waiting for a grant.
//
// A limiter is scoped to one client (one credential/workspace), never
// shared globally, so concurrent runs for different users do not starve
// each other.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter granting at most perSecond calls per
// rolling second. Values <= 0 fall back to DefaultRequestsPerSecond.
func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRequestsPerSecond
	}
	// Burst of 1 spaces grants evenly instead of allowing spikes. The
	// interval carries a 5% pad: grants spaced at exactly 1/perSecond plus
	// scheduler jitter can land perSecond+1 calls inside a strict rolling
	// second.
	interval := time.Duration(float64(time.Second) / perSecond * 1.05)
	return &RateLimiter{bucket: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until permission to make one outbound call is granted.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}
