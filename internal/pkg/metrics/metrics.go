package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

// Outcome labels shared by every recorded operation.
const (
	OutcomeOK                = "ok"
	OutcomeReplayed          = "replayed"
	OutcomeNoop              = "noop"
	OutcomeInvalidArgument   = "invalid_argument"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeInvalidState      = "invalid_state"
	OutcomeNotFound          = "not_found"
	OutcomeStorageError      = "storage_error"
)

type Recorder interface {
	ObserveOperation(operation, outcome string, elapsed time.Duration)
	AddExpired(n int)
	AddRollbackFailure()
}

type PrometheusRecorder struct {
	operations       *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	expired          prometheus.Counter
	rollbackFailures prometheus.Counter
}

func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "operations_total",
			Help:      "Reservation lifecycle operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "operation_duration_seconds",
			Help:      "Latency of reservation lifecycle operations, including transaction retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "expired_total",
			Help:      "Reservations moved to expired by the sweeper.",
		}),
		rollbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "rollback_failures_total",
			Help:      "Releases that failed while rolling back a partially reserved cart.",
		}),
	}

	for _, c := range []prometheus.Collector{r.operations, r.duration, r.expired, r.rollbackFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *PrometheusRecorder) AddExpired(n int) {
	if n > 0 {
		r.expired.Add(float64(n))
	}
}

func (r *PrometheusRecorder) AddRollbackFailure() {
	r.rollbackFailures.Inc()
}

type nopRecorder struct{}

// Nop discards everything. Used by tests and the one-shot CLI.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
func (nopRecorder) AddExpired(int)                                 {}
func (nopRecorder) AddRollbackFailure()                            {}
