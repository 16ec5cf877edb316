package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "water_station_map"

// Outcome labels for StoreOperations.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Destination labels for ReportSubmissions.
const (
	DestinationRemote   = "remote"
	DestinationFallback = "fallback"
)

// Metrics holds the Prometheus collectors for the station and report services.
type Metrics struct {
	StoreOperations   *prometheus.CounterVec   // labels: store, operation, outcome
	StoreDuration     *prometheus.HistogramVec // labels: store, operation
	ReportSubmissions *prometheus.CounterVec   // labels: destination
	FallbackLogSize   prometheus.Gauge
	StoreConnected    prometheus.Gauge
	ReportsSynced     *prometheus.CounterVec // labels: outcome
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StoreOperations,
		m.StoreDuration,
		m.ReportSubmissions,
		m.FallbackLogSize,
		m.StoreConnected,
		m.ReportsSynced,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build
// as many instances as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StoreOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Station store operations by store, operation and outcome.",
		}, []string{"store", "operation", "outcome"}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Station store operation latency.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"store", "operation"}),
		ReportSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_submissions_total",
			Help:      "Error report submissions by destination.",
		}, []string{"destination"}),
		FallbackLogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_fallback_log_size",
			Help:      "Number of reports held in the local fallback log.",
		}),
		StoreConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_connected",
			Help:      "1 when the station store is connected, 0 otherwise.",
		}),
		ReportsSynced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_synced_total",
			Help:      "Fallback reports replayed to the remote store by outcome.",
		}, []string{"outcome"}),
	}
}
