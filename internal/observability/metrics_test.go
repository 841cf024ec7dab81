package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordBackend(t *testing.T) {
	m := NewMetrics()
	m.RecordBackend("GET", "/departments", "ok", 10*time.Millisecond)
	m.RecordBackend("GET", "/departments", "ok", 5*time.Millisecond)
	m.RecordBackend("GET", "/departments", "error", time.Millisecond)

	if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("GET", "/departments", "ok")); got != 2 {
		t.Fatalf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("GET", "/departments", "error")); got != 1 {
		t.Fatalf("error count = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordBackend("GET", "/", "ok", time.Millisecond)
	m.RecordNotification("error")
}
