// Package metrics holds the Prometheus counters for leaderboard loads and
// report triggers.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mastersboard"

// Outcome labels
const (
	OutcomeOK        = "ok"
	OutcomeUpstream  = "upstream"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeError     = "error"
	OutcomeIgnored   = "ignored"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	loads         *prometheus.CounterVec
	reports       *prometheus.CounterVec
	unknownStatus prometheus.Counter
}

// New creates the counters and registers them together with the Go runtime
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Leaderboard loads by board and outcome.",
		}, []string{"board", "outcome"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Report triggers by board and outcome.",
		}, []string{"board", "outcome"}),
		unknownStatus: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_round_status_total",
			Help:      "Rounds received with a status the board does not recognize.",
		}),
	}

	m.registry.MustRegister(
		m.loads,
		m.reports,
		m.unknownStatus,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Load records one leaderboard load
func (m *Metrics) Load(board, outcome string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(board, outcome).Inc()
}

// Report records one report trigger
func (m *Metrics) Report(board, outcome string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(board, outcome).Inc()
}

// UnknownRoundStatus records a round with an unrecognized status
func (m *Metrics) UnknownRoundStatus() {
	if m == nil {
		return
	}
	m.unknownStatus.Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
