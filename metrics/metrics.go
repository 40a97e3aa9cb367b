// Package metrics exposes pipeline frame timings and dirty-bit escalation
// counts as Prometheus metrics, served on an optional local /metrics
// listener. Grounded on newbpydev-bubblyui's
// pkg/bubbly/monitoring/metrics.go. Never required for correctness; a nil
// *Metrics is safe to call every method on.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters/histograms the pipeline driver updates once
// per frame.
type Metrics struct {
	registry *prometheus.Registry

	frameDuration   *prometheus.HistogramVec
	dirtyEscalation *prometheus.CounterVec
}

// New registers a fresh set of collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		frameDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "wisp_frame_stage_seconds",
			Help: "Duration of each render pipeline stage.",
		}, []string{"stage"}),
		dirtyEscalation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wisp_dirty_bit_escalations_total",
			Help: "Count of times a dirty bit was set, by bit name.",
		}, []string{"bit"}),
	}
	reg.MustRegister(m.frameDuration, m.dirtyEscalation)
	return m
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.frameDuration.WithLabelValues(stage).Observe(seconds)
}

// IncDirtyBit records a dirty-bit escalation by name (style/layout/paint/
// composite/raster/draw).
func (m *Metrics) IncDirtyBit(bit string) {
	if m == nil {
		return
	}
	m.dirtyEscalation.WithLabelValues(bit).Inc()
}

// Handler returns an http.Handler serving the registered metrics in the
// Prometheus exposition format, for an optional local listener.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a background HTTP server exposing the /metrics endpoint on
// addr. It never blocks the caller; listener errors are silently dropped
// since metrics are diagnostic-only.
func (m *Metrics) Serve(addr string) {
	if m == nil {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	go http.ListenAndServe(addr, mux)
}
