package notion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_RollingWindow(t *testing.T) {
	const perSecond = 5

	limiter := NewRateLimiter(perSecond)
	ctx := context.Background()

	// Burst N+5 acquisitions and timestamp every grant.
	timestamps := make([]time.Time, 0, perSecond+5)
	for i := 0; i < perSecond+5; i++ {
		require.NoError(t, limiter.Wait(ctx))
		timestamps = append(timestamps, time.Now())
	}

	// No rolling one-second window may contain more than N grants.
	for i := range timestamps {
		count := 0
		windowEnd := timestamps[i].Add(time.Second)
		for j := i; j < len(timestamps); j++ {
			if timestamps[j].Before(windowEnd) {
				count++
			}
		}
		assert.LessOrEqual(t, count, perSecond,
			"window starting at grant %d contained %d grants", i, count)
	}
}

func TestRateLimiter_GrantSpacingExceedsEvenSplit(t *testing.T) {
	const perSecond = 10

	limiter := NewRateLimiter(perSecond)
	ctx := context.Background()

	// The first grant is the burst token; subsequent grants must be spaced
	// wider than an even 1/N split, otherwise clock jitter can squeeze an
	// extra call into a strict rolling second.
	require.NoError(t, limiter.Wait(ctx))
	prev := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
		now := time.Now()
		assert.Greater(t, now.Sub(prev), time.Second/perSecond,
			"grant %d arrived on the even split boundary", i+1)
		prev = now
	}
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	limiter := NewRateLimiter(1)

	// Drain the initial token so the next wait would block.
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.Error(t, err)
}

func TestNewRateLimiter_DefaultCeiling(t *testing.T) {
	limiter := NewRateLimiter(0)
	require.NotNil(t, limiter)

	// The default ceiling still grants immediately for the first call.
	assert.NoError(t, limiter.Wait(context.Background()))
}
