package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"calculator-api/internal/calculator"
	"calculator-api/internal/config"
	"calculator-api/internal/observability"
	"calculator-api/internal/server"
)

var signalNotify = signal.Notify

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	overrides, err := parseFlags(os.Args[1:])
	if err != nil {
		panic(fmt.Sprintf("failed to parse flags: %v", err))
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	// Logger
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	// Tracing, metrics and log export
	logger, telemetryShutdown, err := initTelemetry(ctx, cfg.Telemetry, logger)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger(logger)
	defer telemetryShutdown(ctx)

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize server", zap.Error(err))
	}

	go func() {
		logger.Info("server started", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownGracePeriod, logger)
}

// newServer wires the calculator domain into the HTTP router. Metric
// instruments bind to whatever meter provider is global at this point.
func newServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	metrics, err := calculator.NewMetrics(otel.Meter("calculator"))
	if err != nil {
		return nil, err
	}

	httpMetrics, err := observability.NewHTTPMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("registering http metrics: %w", err)
	}

	service := calculator.NewService(logger, metrics)
	handler := calculator.NewHandler(service, logger, metrics)

	router := server.NewRouter(cfg, server.Deps{
		Logger:      logger,
		Calculator:  handler,
		HTTPMetrics: httpMetrics,
		Gatherer:    prometheus.DefaultGatherer,
	})

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}, nil
}

func waitForShutdown(srv *http.Server, timeout time.Duration, logger *zap.Logger) {

	stop := make(chan os.Signal, 1)

	signalNotify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := srv.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
