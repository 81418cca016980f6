package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	remoteRequests *prometheus.CounterVec
	probes         *prometheus.CounterVec
	reports        *prometheus.CounterVec
	scores         prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skywatch_remote_requests_total",
				Help: "Outbound telescope-network API requests by outcome.",
			},
			[]string{"kind"},
		),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skywatch_probe_total",
				Help: "Connectivity probes by result.",
			},
			[]string{"result"},
		),
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skywatch_reports_total",
				Help: "Reports built by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skywatch_visibility_score",
				Help:    "Distribution of computed visibility scores.",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
	}

	reg.MustRegister(m.remoteRequests, m.probes, m.reports, m.scores)
	return m
}

func (m *Metrics) ObserveRequest(kind string) {
	if m == nil {
		return
	}
	m.remoteRequests.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveProbe(reachable bool) {
	if m == nil {
		return
	}
	result := "unreachable"
	if reachable {
		result = "reachable"
	}
	m.probes.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveReport(mode, outcome string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) ObserveScore(score float64) {
	if m == nil {
		return
	}
	m.scores.Observe(score)
}
