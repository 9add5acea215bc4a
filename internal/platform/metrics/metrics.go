// Package metrics holds the Prometheus instruments shared by every service
// handler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics labels requests by service and outcome so one instrument covers all
// eight endpoints.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// New registers the instruments on the default registry.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "veridical_requests_total",
			Help: "Requests by service and outcome",
		}, []string{"service", "outcome"}), // outcome: "ok", "not_found", "bad_request", "error"

		Latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veridical_request_duration_seconds",
			Help:    "End-to-end handler latency by service",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"service"}),
	}
}

// Observe records one finished request. Nil-safe so handlers can be
// constructed without metrics in tests.
func (m *Metrics) Observe(service, outcome string, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(service, outcome).Inc()
		m.Latency.WithLabelValues(service).Observe(d.Seconds())
	}
}
