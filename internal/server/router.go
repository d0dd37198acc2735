package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"calculator-api/internal/calculator"
	"calculator-api/internal/config"
	"calculator-api/internal/handlers"
	"calculator-api/internal/observability"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Logger      *zap.Logger
	Calculator  *calculator.Handler
	HTTPMetrics *observability.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

// Option adjusts router construction, mainly for tests.
type Option func(*routerConfig)

type routerConfig struct {
	limiter rateLimiter
}

// WithRateLimiter replaces the limiter derived from config.
func WithRateLimiter(l rateLimiter) Option {
	return func(c *routerConfig) {
		c.limiter = l
	}
}

func NewRouter(cfg config.Config, deps Deps, opts ...Option) http.Handler {
	rc := routerConfig{
		limiter: newTokenBucketLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}
	for _, opt := range opts {
		opt(&rc)
	}

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware(deps.Logger))
	r.Use(observability.RecoveryMiddleware(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(rateLimitMiddleware(rc.limiter, deps.Logger))

	r.Get("/health", handlers.Health)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", observability.PrometheusHandler(gatherer))

	calculator.RegisterRoutes(r, deps.Calculator)

	return r
}
