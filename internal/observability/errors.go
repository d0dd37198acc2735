package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calculator-api/internal/handlers"
)

// RecordError centralises request-level error handling: records the error on
// the span, increments counter, logs with trace context and writes a JSON
// error response. Client errors (4xx) log at warn, everything else at error.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))

	fields := []zap.Field{
		zap.String("operation", opName),
		zap.Error(err),
		zap.Int("status", status),
		zap.String("request_id", RequestIDFromContext(ctx)),
	}
	if status < http.StatusInternalServerError {
		logger.Warn(msg, fields...)
	} else {
		logger.Error(msg, fields...)
	}

	if writeErr := handlers.WriteError(w, status, msg); writeErr != nil {
		logger.Warn("writing error response failed", zap.Error(writeErr), zap.Int("status", status))
	}
}
