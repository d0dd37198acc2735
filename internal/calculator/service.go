package calculator

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calculator-api/internal/observability"
)

// Service runs the engine for a single request and instruments the outcome
// with spans, metrics and trace-correlated logs. It holds no request state
// and is safe for concurrent use.
type Service struct {
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
	clock   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the timestamp source, primarily for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func NewService(logger *zap.Logger, metrics *Metrics, opts ...ServiceOption) *Service {
	s := &Service{
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("calculator"),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate parses and evaluates req. Unknown operations and division by
// zero produce a response with IsSuccess=false; the error return is reserved
// for faults the caller should treat as internal.
func (s *Service) Calculate(ctx context.Context, req CalculationRequest) (CalculationResponse, error) {
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := s.tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("calculator.operation", req.Operation),
			attribute.Float64("calculator.operand.a", req.FirstNumber),
			attribute.Float64("calculator.operand.b", req.SecondNumber),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx, s.logger)

	logger.Info("performing calculation",
		zap.Float64("a", req.FirstNumber),
		zap.String("operation", req.Operation),
		zap.Float64("b", req.SecondNumber),
		zap.String("request_id", requestID),
	)

	resp := CalculationResponse{
		FirstNumber:  req.FirstNumber,
		SecondNumber: req.SecondNumber,
		Operation:    req.Operation,
		Timestamp:    s.clock(),
	}

	start := time.Now()
	op, err := ParseOperation(req.Operation)
	var result float64
	if err == nil {
		result, err = Evaluate(op, req.FirstNumber, req.SecondNumber)
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", operationLabel(op)))

	if err != nil {
		msg := FailureMessage(err, req.Operation)

		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		s.metrics.errors.Add(ctx, 1, attrs)

		logger.Warn("calculation failed",
			zap.String("operation", req.Operation),
			zap.Error(err),
			zap.String("request_id", requestID),
		)

		resp.ErrorMessage = &msg
		return resp, nil
	}

	s.metrics.ops.Add(ctx, 1, attrs)
	s.metrics.duration.Record(ctx, elapsed, attrs)
	s.metrics.result.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", op.String()),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	resp.Result = result
	resp.IsSuccess = true
	return resp, nil
}

// operationLabel keeps metric attributes to the closed operation set.
func operationLabel(op OperationKind) string {
	if _, ok := operationNames[op]; !ok {
		return "unknown"
	}
	return strings.ToLower(op.String())
}
