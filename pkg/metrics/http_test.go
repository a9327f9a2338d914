package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewHTTPMetricsNilRegistry(t *testing.T) {
	t.Parallel()

	m := NewHTTPMetrics(nil)
	// must be safe to call without registered collectors
	m.ObserveRequest("GET", "/api/v1/books", 200, time.Millisecond)
}

func TestObserveRequestRegisters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/books", 200, 5*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/checkout", 422, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}
	if len(families) != 2 {
		t.Fatalf("expected 2 metric families, got %d", len(families))
	}
}

func TestStatusClass(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		200: "2xx",
		301: "3xx",
		404: "4xx",
		503: "5xx",
	}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("status %d: expected %s, got %s", status, want, got)
		}
	}
}
