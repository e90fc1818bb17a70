// Package metrics exposes Prometheus instruments for AI calls, persistence
// and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homsent_chef"

// Metrics groups every collector of the service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	aiCalls             *prometheus.CounterVec
	aiCallDuration      *prometheus.HistogramVec
	persistenceFailures *prometheus.CounterVec
	staleResults        *prometheus.CounterVec
	workspaces          prometheus.Gauge
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		aiCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ai",
				Name:      "calls_total",
				Help:      "Total number of AI gateway calls",
			},
			[]string{"operation", "status"},
		),
		aiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ai",
				Name:      "call_duration_seconds",
				Help:      "Duration of AI gateway calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
			},
			[]string{"operation"},
		),
		persistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "persistence",
				Name:      "failures_total",
				Help:      "Persistence reads or writes that failed and were swallowed",
			},
			[]string{"op"},
		),
		staleResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "stale_results_total",
				Help:      "Async results dropped because a newer request superseded them",
			},
			[]string{"slot"},
		),
		workspaces: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "controller",
				Name:      "workspaces",
				Help:      "Number of scopes with a loaded workspace",
			},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// NewWithRuntime is New plus the Go runtime and process collectors, used by
// the server binary.
func NewWithRuntime() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return New(reg)
}

// Outcomes of an AI call, used as the status label.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
)

// ObserveAICall records the outcome and latency of one gateway call.
func (m *Metrics) ObserveAICall(operation string, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.ObserveAIOutcome(operation, outcome, elapsed)
}

// ObserveAIOutcome records a call whose result is not a plain success or
// failure, such as a lookup that found nothing.
func (m *Metrics) ObserveAIOutcome(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.aiCalls.WithLabelValues(operation, outcome).Inc()
	m.aiCallDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// PersistenceFailure counts a swallowed storage error. op is "read" or "write".
func (m *Metrics) PersistenceFailure(op string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(op).Inc()
}

// StaleResult counts an async completion dropped by the sequence guard.
func (m *Metrics) StaleResult(slot string) {
	if m == nil {
		return
	}
	m.staleResults.WithLabelValues(slot).Inc()
}

// SetWorkspaces reports the number of loaded workspaces.
func (m *Metrics) SetWorkspaces(n int) {
	if m == nil {
		return
	}
	m.workspaces.Set(float64(n))
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
