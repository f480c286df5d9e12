package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/mgdevhub/gym-meals/internal/service"
	"github.com/mgdevhub/gym-meals/pkg/auth"
	"github.com/mgdevhub/gym-meals/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window limiter keyed by device id, used to cap
// calls to the vision model.
type RateLimiter struct {
	maxCalls int
	window   time.Duration
	clock    service.Clock

	mu    sync.Mutex
	calls map[string][]time.Time
}

func NewRateLimiter(maxCalls int, window time.Duration, clock service.Clock) *RateLimiter {
	return &RateLimiter{
		maxCalls: maxCalls,
		window:   window,
		clock:    clock,
		calls:    make(map[string][]time.Time),
	}
}

// Allow records a call for key if it fits in the window. When rejected it
// reports how long until the oldest call ages out.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.calls[key][:0]
	for _, t := range l.calls[key] {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	l.calls[key] = kept

	if len(kept) >= l.maxCalls {
		retryAfter := l.window - now.Sub(kept[0])
		if retryAfter < 0 {
			retryAfter = 0
		}
		return false, retryAfter
	}

	l.calls[key] = append(kept, now)
	return true, 0
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, ok := auth.DeviceID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		allowed, retryAfter := l.Allow(deviceID)
		if !allowed {
			logger.Logger().Info("rate limit hit",
				zap.String("device_id", deviceID), zap.Duration("retry_after", retryAfter))
			c.Header("Retry-After", retryAfter.Truncate(time.Second).String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many analysis requests"})
			return
		}

		c.Next()
	}
}
