package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type OperationMetrics struct {
	Total    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

var Operations = OperationMetrics{
	Total: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_operations_total",
			Help: "Total number of ledger operations by outcome.",
		},
		[]string{"operation", "outcome"},
	),
	Duration: promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bank_operation_duration_seconds",
			Help:    "Histogram of ledger operation latencies.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	),
}

func RecordOperation(operation, outcome string, duration time.Duration) {
	Operations.Total.WithLabelValues(operation, outcome).Inc()
	Operations.Duration.WithLabelValues(operation).Observe(duration.Seconds())
}

// WriteTextfile dumps every registered collector in the Prometheus text format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
