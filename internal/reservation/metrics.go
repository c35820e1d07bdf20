package reservation

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	// DecisionsTotal counts engine decisions by operation and outcome. The outcome
	// is "accepted", the rejection code, or "error" for infrastructure failures.
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "locaux_reservation_decisions_total",
			Help: "Total number of reservation engine decisions",
		},
		[]string{"operation", "outcome"},
	)
)

func recordDecision(operation Action, err error) {
	DecisionsTotal.WithLabelValues(string(operation), outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "accepted"
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "error"
}
