package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors for the transcription service.
// It satisfies the pipeline's Observer interface.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	passes    *prometheus.CounterVec
	durations prometheus.Histogram
}

// New creates and registers the service collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadmirror",
			Name:      "transcription_requests_total",
			Help:      "Transcription requests by outcome (success, degraded, error).",
		}, []string{"outcome"}),
		passes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadmirror",
			Name:      "transcription_passes_total",
			Help:      "Individual transcription passes by strategy and result.",
		}, []string{"strategy", "result"}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadmirror",
			Name:      "transcription_duration_seconds",
			Help:      "End-to-end pipeline processing time.",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
	registry.MustRegister(m.requests, m.passes, m.durations)
	return m
}

// ObserveRequest records one completed pipeline run.
func (m *Metrics) ObserveRequest(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.durations.Observe(duration.Seconds())
}

// ObservePass records one transcription pass attempt.
func (m *Metrics) ObservePass(strategy string, success bool) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.passes.WithLabelValues(strategy, result).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
