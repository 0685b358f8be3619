package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// carpoolOps counts carpool operations by name and outcome
// (ok, not_found, conflict, error).
var carpoolOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "carpool_operations_total",
		Help: "Total number of carpool operations by outcome.",
	},
	[]string{"operation", "outcome"},
)

func init() {
	prometheus.MustRegister(carpoolOps)
}

// observe records the outcome of op and returns err unchanged.
func observe(op string, err error) error {
	carpoolOps.WithLabelValues(op, outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
