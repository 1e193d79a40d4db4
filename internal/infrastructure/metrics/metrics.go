package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersTotal   *prometheus.CounterVec
	TransferDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accountmanager_transfers_total",
				Help: "Total number of transfer requests by outcome",
			},
			[]string{"outcome"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "accountmanager_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveTransfer records one finished transfer request.
func (m *Metrics) ObserveTransfer(outcome string, duration time.Duration) {
	m.TransfersTotal.WithLabelValues(outcome).Inc()
	m.TransferDuration.Observe(duration.Seconds())
}
