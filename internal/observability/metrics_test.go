package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("NewHTTPMetrics returned error: %v", err)
	}

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/calculator/add", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for range 3 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/calculator/add?a=1&b=2", nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/calculator/add", "400"))
	if got != 3 {
		t.Fatalf("expected 3 requests counted, got %v", got)
	}
}

func TestNewHTTPMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewHTTPMetrics(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := NewHTTPMetrics(reg); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestPrometheusHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg)
	if err != nil {
		t.Fatalf("NewHTTPMetrics returned error: %v", err)
	}

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	PrometheusHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("expected request counter in exposition, got %q", w.Body.String())
	}
}
