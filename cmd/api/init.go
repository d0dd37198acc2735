package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"calculator-api/internal/config"
	"calculator-api/internal/observability"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTLP trace, metric and log pipelines when enabled
// and returns the logger to use from here on plus a combined shutdown.
func initTelemetry(ctx context.Context, cfg config.Telemetry, logger *zap.Logger) (*zap.Logger, shutdownFunc, error) {
	var shutdowns []shutdownFunc

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !cfg.Enabled {
		return logger, shutdown, nil
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	if cfg.ExportLogs {
		teed, logShutdown, err := observability.InitLogging(ctx, logger)
		if err != nil {
			_ = shutdown(ctx)
			return nil, nil, err
		}
		shutdowns = append(shutdowns, logShutdown)
		logger = teed
	}

	return logger, shutdown, nil
}
