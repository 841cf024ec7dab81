package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the portal's prometheus collectors.
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	auditEvents     *prometheus.CounterVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total HTTP requests served by the portal.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Portal HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_http_errors_total",
			Help: "Requests that ended in an application error.",
		}, []string{"route", "method", "code"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_backend_requests_total",
			Help: "Calls made to the helpdesk REST backend.",
		}, []string{"method", "endpoint", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_backend_request_duration_seconds",
			Help:    "Latency of calls to the helpdesk REST backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_notifications_total",
			Help: "User-facing notifications raised by the portal.",
		}, []string{"level"}),
		auditEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_audit_events_total",
			Help: "Audit events raised by portal actions.",
		}, []string{"type"}),
	}
	reg.MustRegister(
		m.requests, m.latency, m.errors,
		m.backendRequests, m.backendLatency, m.notifications, m.auditEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordRequest observes a served request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordBackend observes one backend call. Endpoint should be a path template.
func (m *Metrics) RecordBackend(method, endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(method, endpoint, outcome).Inc()
	m.backendLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordNotification counts a flash shown to a user.
func (m *Metrics) RecordNotification(level string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(level).Inc()
}

func (m *Metrics) RecordAuditEvent(eventType string) {
	if m == nil {
		return
	}
	m.auditEvents.WithLabelValues(eventType).Inc()
}
