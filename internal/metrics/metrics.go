// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tabernacle"

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	submissions     *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	rsvps           *prometheus.CounterVec
	emails          *prometheus.CounterVec
	prayers         prometheus.Counter
	httpDuration    *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Form submissions persisted, by kind",
	}, []string{"kind"})
	m.guardRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Mutating requests rejected by the origin or CSRF check",
	}, []string{"reason"})
	m.rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter, by endpoint",
	}, []string{"endpoint"})
	m.rsvps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rsvps_total",
		Help:      "RSVP writes by outcome (created, updated, cancelled, over_capacity)",
	}, []string{"kind"})
	m.emails = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Outbound emails by template and status",
	}, []string{"template", "status"})
	m.prayers = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prayers_total",
		Help:      "Pray button presses recorded on prayer wall posts",
	})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and status",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions, m.guardRejections, m.rateLimited,
		m.rsvps, m.emails, m.prayers, m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SubmissionStored(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

func (m *Metrics) GuardRejected(reason string) {
	if m == nil {
		return
	}
	m.guardRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) RateLimited(endpoint string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) Rsvp(kind string) {
	if m == nil {
		return
	}
	m.rsvps.WithLabelValues(kind).Inc()
}

// EmailSent records one delivery attempt for template.
func (m *Metrics) EmailSent(template string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.emails.WithLabelValues(template, status).Inc()
}

func (m *Metrics) Prayed() {
	if m == nil {
		return
	}
	m.prayers.Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
