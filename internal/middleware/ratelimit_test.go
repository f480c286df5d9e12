package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestRateLimiter_SlidingWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(2, time.Hour, clock)

	allowed, _ := limiter.Allow("d1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("d1")
	assert.True(t, allowed)

	allowed, retryAfter := limiter.Allow("d1")
	assert.False(t, allowed)
	assert.Equal(t, time.Hour, retryAfter)

	// other keys are independent
	allowed, _ = limiter.Allow("d2")
	assert.True(t, allowed)

	// once the oldest call ages out the key recovers
	clock.now = clock.now.Add(time.Hour + time.Minute)
	allowed, _ = limiter.Allow("d1")
	assert.True(t, allowed)
}
