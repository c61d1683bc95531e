package metrics

import (
	"errors"
	"time"

	"github.com/dimitrije/frame-nest/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names follow the contract's public functions.
const (
	OpCreateCollection = "create-collection"
	OpGetCollection    = "get-collection"
	OpListCollections  = "list-collections"
	OpAddPhoto         = "add-photo"
	OpGetPhoto         = "get-photo"
	OpListPhotos       = "list-photos"
	OpSetPermissions   = "set-permissions"
	OpGetPermissions   = "get-permissions"
	OpListPermissions  = "list-permissions"
)

// Metrics holds the Prometheus collectors for frame-nest operations
type Metrics struct {
	// Operation counter by name and outcome
	Operations *prometheus.CounterVec

	// Operation latency histogram
	Latency *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "framenest_operations_total",
				Help: "Total number of frame-nest operations by outcome",
			},
			[]string{"operation", "result"},
		),
		Latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "framenest_operation_duration_seconds",
				Help:    "Operation latency in seconds",
				Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"operation"},
		),
	}
}

// Result classifies an operation error into a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, services.ErrCollectionNotFound):
		return "not_found"
	case errors.Is(err, services.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, services.ErrInvalidArgument):
		return "invalid"
	}
	return "error"
}

// Observe records one completed operation.
func (m *Metrics) Observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, Result(err)).Inc()
	m.Latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
