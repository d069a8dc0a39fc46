package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for storage operations.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	StorageOperations *prometheus.CounterVec
	StorageDuration   *prometheus.HistogramVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StorageOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parley_dialogue_storage_operations_total",
			Help: "Total number of dialogue storage operations by outcome",
		}, []string{"operation", "outcome"}),
		StorageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parley_dialogue_storage_operation_duration_seconds",
			Help:    "Latency of dialogue storage operations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parley_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveStorage records one storage operation.
func (m *Metrics) ObserveStorage(operation string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.StorageOperations.WithLabelValues(operation, outcome).Inc()
	m.StorageDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}
