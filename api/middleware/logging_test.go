package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookhaven/bookhaven-backend/pkg/metrics"
)

func TestLoggingUsesRoutePatternAsMetricLabel(t *testing.T) {
	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(Logging(nil, httpMetrics))
	r.Get("/books/{bookID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/books/1", "/books/2", "/books/42"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %s: expected 200, got %d", path, rec.Code)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		if len(family.GetMetric()) != 1 {
			t.Fatalf("expected one series for the route, got %d", len(family.GetMetric()))
		}
		for _, label := range family.GetMetric()[0].GetLabel() {
			if label.GetName() == "route" && label.GetValue() != "/books/{bookID}" {
				t.Fatalf("expected route pattern label, got %q", label.GetValue())
			}
		}
		return
	}
	t.Fatal("http_requests_total not found in gathered metrics")
}
