package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/outreach/internal/httputil"
)

// rateLimiterStore holds per-IP limiters. Entries idle for staleAfter are dropped.
type rateLimiterStore struct {
	limiters   sync.Map // client IP -> *rateLimiterEntry
	rps        float64
	burst      int
	staleAfter time.Duration
}

type rateLimiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// RateLimitMiddleware enforces a token bucket per client IP on the API routes.
// Exceeding it answers 429 with a Retry-After header. The cleanup loop stops with ctx.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:        rps,
		burst:      burst,
		staleAfter: time.Hour,
	}
	go store.cleanupStale(ctx, 5*time.Minute)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds()) + 1
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			httputil.WriteError(c, http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	val, _ := s.limiters.LoadOrStore(ip, &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	})
	entry := val.(*rateLimiterEntry)
	entry.mu.Lock()
	entry.lastAccess = now
	entry.mu.Unlock()
	return entry.limiter
}

func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeStale(time.Now().Add(-s.staleAfter))
		}
	}
}

func (s *rateLimiterStore) removeStale(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		stale := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()
		if stale {
			s.limiters.Delete(key)
		}
		return true
	})
}
