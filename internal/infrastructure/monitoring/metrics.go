// Package monitoring provides Prometheus metrics for the GridBoard backend.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Board metrics
	ProjectsActive prometheus.Gauge
	WindowsActive  prometheus.Gauge
	MutationsTotal *prometheus.CounterVec

	// Sync metrics
	SyncTotal    prometheus.Counter
	SyncErrors   prometheus.Counter
	SyncDuration prometheus.Histogram

	// Session metrics
	WorkspacesActive prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
}

// NewMetrics registers a collector set on the default registry
func NewMetrics() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers a collector set on the given registry. Each server
// instance owns its registry so construction stays repeatable.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridboard_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridboard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		ProjectsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridboard_projects_active",
			Help: "Number of projects across live workspaces",
		}),
		WindowsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridboard_windows_active",
			Help: "Number of windows across live workspaces",
		}),
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridboard_board_mutations_total",
				Help: "Total board mutations by kind",
			},
			[]string{"kind"},
		),
		SyncTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridboard_sync_total",
			Help: "Total debounced sync dispatches",
		}),
		SyncErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "gridboard_sync_errors_total",
			Help: "Total failed sync dispatches",
		}),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridboard_sync_duration_seconds",
			Help:    "Sync dispatch duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		WorkspacesActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridboard_workspaces_active",
			Help: "Number of live user workspaces",
		}),
		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gridboard_ws_connections",
			Help: "Active WebSocket connections",
		}),
	}
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordMutation records a single board mutation
func (m *Metrics) RecordMutation(kind string) {
	m.MutationsTotal.WithLabelValues(kind).Inc()
}

// RecordSync records a sync dispatch outcome
func (m *Metrics) RecordSync(duration time.Duration, err error) {
	m.SyncTotal.Inc()
	m.SyncDuration.Observe(duration.Seconds())
	if err != nil {
		m.SyncErrors.Inc()
	}
}
