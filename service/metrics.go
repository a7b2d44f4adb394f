package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service collectors.
type Metrics struct {
	ops           *prometheus.CounterVec
	allocFailures prometheus.Counter
	entries       prometheus.Gauge
	pending       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg when it
// is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rbkv",
				Name:      "ops_total",
				Help:      "Total number of handled operations.",
			}, []string{"op"}),
		allocFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "rbkv",
				Name:      "alloc_failures_total",
				Help:      "Total number of writes rejected for lack of node capacity.",
			}),
		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rbkv",
				Name:      "entries",
				Help:      "Number of stored keys.",
			}),
		pending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "rbkv",
				Name:      "outbox_pending",
				Help:      "Number of change events waiting for broadcast.",
			}),
	}
	if reg != nil {
		reg.MustRegister(m.ops, m.allocFailures, m.entries, m.pending)
	}
	return m
}
