package server

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"calculator-api/internal/handlers"
)

type rateLimiter interface {
	Allow() bool
}

// newTokenBucketLimiter returns nil when rps is 0, which disables limiting.
func newTokenBucketLimiter(rps float64, burst int) rateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func rateLimitMiddleware(limiter rateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			if err := handlers.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded, please retry shortly"); err != nil {
				logger.Warn("writing rate limit response failed", zap.Error(err))
			}
		})
	}
}
