package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsMatchedRoute(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()
	httpRequestsInFlight.Set(0)

	router := chi.NewRouter()
	router.Use(Metrics)
	router.Get("/api/ledger/parties/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ledger/parties/01ABC", nil))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/ledger/parties/{id}", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("counter = %v, want 1 under the route pattern label", got)
	}
	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Fatalf("in-flight gauge = %v, want 0 after completion", got)
	}
}

func TestMetricsCapturesStatus(t *testing.T) {
	httpRequestsTotal.Reset()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	Metrics(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", strconv.Itoa(http.StatusNotFound))
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("counter = %v, want 1", got)
	}
}
