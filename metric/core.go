// Package metric provides Prometheus metrics for page synchronization and
// the HTTP server that exposes them.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core synchronization metrics.
type Metrics struct {
	PagesActive  prometheus.Gauge
	CardsActive  *prometheus.GaugeVec
	SyncsTotal   *prometheus.CounterVec
	CardsSynced  *prometheus.CounterVec
	SyncDuration *prometheus.HistogramVec
	SyncErrors   *prometheus.CounterVec
	BytesSent    *prometheus.CounterVec
}

// Sync outcome labels for SyncsTotal.
const (
	SyncStatusOK      = "ok"      // every dirty card reached the renderer
	SyncStatusPartial = "partial" // some cards failed resolution, rest synced
	SyncStatusFailed  = "failed"  // transport delivery failed
)

// Error kind labels for SyncErrors.
const (
	ErrorKindResolve   = "resolve"
	ErrorKindTransport = "transport"
)

// NewMetrics creates a new Metrics instance with all core metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		PagesActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "dashsync",
				Subsystem: "pages",
				Name:      "active",
				Help:      "Number of pages currently registered",
			},
		),

		CardsActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "dashsync",
				Subsystem: "cards",
				Name:      "active",
				Help:      "Number of cards currently on a page",
			},
			[]string{"page"},
		),

		SyncsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashsync",
				Subsystem: "sync",
				Name:      "total",
				Help:      "Total number of sync operations that transmitted a batch",
			},
			[]string{"page", "status"},
		),

		CardsSynced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashsync",
				Subsystem: "sync",
				Name:      "cards_total",
				Help:      "Total number of card records transmitted",
			},
			[]string{"page"},
		),

		SyncDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dashsync",
				Subsystem: "sync",
				Name:      "duration_seconds",
				Help:      "Sync duration in seconds, including transport delivery",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"page"},
		),

		SyncErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashsync",
				Subsystem: "sync",
				Name:      "errors_total",
				Help:      "Total number of sync errors by kind",
			},
			[]string{"page", "kind"},
		),

		BytesSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dashsync",
				Subsystem: "sync",
				Name:      "bytes_total",
				Help:      "Total serialized batch bytes handed to the transport",
			},
			[]string{"page"},
		),
	}
}

// ObserveSync records the outcome of one transmitting sync operation.
func (m *Metrics) ObserveSync(page, status string, cards int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SyncsTotal.WithLabelValues(page, status).Inc()
	m.CardsSynced.WithLabelValues(page).Add(float64(cards))
	m.SyncDuration.WithLabelValues(page).Observe(elapsed.Seconds())
}

// collectors returns every core metric for bulk registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.PagesActive,
		m.CardsActive,
		m.SyncsTotal,
		m.CardsSynced,
		m.SyncDuration,
		m.SyncErrors,
		m.BytesSent,
	}
}
