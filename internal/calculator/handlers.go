package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calculator-api/internal/handlers"
	"calculator-api/internal/observability"
)

const (
	msgRequestNull     = "Request cannot be null"
	msgOperationEmpty  = "Operation cannot be null or empty"
	msgRequestTooLarge = "Request body too large"
)

// maxRequestBytes caps the POST body; a calculation request is a few dozen bytes.
const maxRequestBytes = 1 << 20

var (
	errRequestNull    = errors.New("request body is missing or not valid JSON")
	errOperationEmpty = errors.New("operation is empty")
)

// Calculator evaluates a single calculation request.
type Calculator interface {
	Calculate(ctx context.Context, req CalculationRequest) (CalculationResponse, error)
}

// Handler maps HTTP requests onto a Calculator and its outcomes onto
// status codes: 200 on success, 400 on validation or evaluation failure,
// 500 on anything unexpected.
type Handler struct {
	calc    Calculator
	logger  *zap.Logger
	metrics *Metrics
	clock   func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHealthClock overrides the time source used by the health endpoint.
func WithHealthClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

func NewHandler(calc Calculator, logger *zap.Logger, metrics *Metrics, opts ...HandlerOption) *Handler {
	h := &Handler{
		calc:    calc,
		logger:  logger,
		metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Calculate handles POST /api/calculator/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req *CalculationRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.reject(w, r, "calculate", msgRequestTooLarge, err, http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil || req == nil {
		cause := errRequestNull
		if err != nil {
			cause = fmt.Errorf("%w: %v", errRequestNull, err)
		}
		h.reject(w, r, "calculate", msgRequestNull, cause, http.StatusBadRequest)
		return
	}

	h.handle(w, r, *req)
}

// Add handles GET /api/calculator/add?a=&b=
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleQuery(w, r, OpAdd)
}

// Subtract handles GET /api/calculator/subtract?a=&b=
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleQuery(w, r, OpSubtract)
}

// Multiply handles GET /api/calculator/multiply?a=&b=
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleQuery(w, r, OpMultiply)
}

// Divide handles GET /api/calculator/divide?a=&b=
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleQuery(w, r, OpDivide)
}

// Health handles GET /api/calculator/health. It never touches the engine.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, HealthResponse{
		Status:    "Healthy",
		Timestamp: h.clock(),
	})
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request, op OperationKind) {
	name := strings.ToLower(op.String())

	a, err := queryFloat(r, "a")
	if err != nil {
		h.reject(w, r, name, `invalid query parameter "a"`, err, http.StatusBadRequest)
		return
	}
	b, err := queryFloat(r, "b")
	if err != nil {
		h.reject(w, r, name, `invalid query parameter "b"`, err, http.StatusBadRequest)
		return
	}

	h.handle(w, r, CalculationRequest{
		FirstNumber:  a,
		SecondNumber: b,
		Operation:    op.String(),
	})
}

// handle is the shared path for every calculation entry point.
func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req CalculationRequest) {
	ctx := r.Context()

	if strings.TrimSpace(req.Operation) == "" {
		h.reject(w, r, "calculate", msgOperationEmpty, errOperationEmpty, http.StatusBadRequest)
		return
	}

	resp, err := h.calculate(ctx, req)
	if err != nil {
		h.reject(w, r, "calculate", handlers.InternalErrorMessage, err, http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !resp.IsSuccess {
		status = http.StatusBadRequest
	}
	h.respond(w, r, status, resp)
}

// respond writes payload as JSON. A payload encoding/json rejects, such as a
// result that overflowed to ±Inf or a NaN operand, becomes a 500 instead of
// an empty response.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, payload any) {
	err := handlers.WriteJSON(w, status, payload)
	switch {
	case err == nil:
	case errors.Is(err, handlers.ErrEncodeResponse):
		h.reject(w, r, "calculate", handlers.InternalErrorMessage, err, http.StatusInternalServerError)
	default:
		observability.LoggerWithTrace(r.Context(), h.logger).Warn("writing response failed",
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(r.Context())),
		)
	}
}

// calculate converts a panic inside the calculator into an error so it is
// reported as an internal fault rather than crashing the request.
func (h *Handler) calculate(ctx context.Context, req CalculationRequest) (resp CalculationResponse, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("calculator panicked: %v", rec)
		}
	}()
	return h.calc.Calculate(ctx, req)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, opName, msg string, err error, status int) {
	ctx := r.Context()
	observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx, h.logger),
		h.metrics.errors, opName, msg, err, status, w)
}

// queryFloat reads a float query parameter. A missing or empty value is 0.
func queryFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}
