package audit

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrReservationRequired = apperror.New(http.StatusInternalServerError, "audit_invalid", "audit entry has no reservation")
)

// Entry is one immutable line of a reservation's history.
// PreviousStatus is empty for the entry written at creation.
type Entry struct {
	ID             string
	ReservationID  string
	ActorID        string
	Action         string
	PreviousStatus string
	NewStatus      string
	Comment        *string
	CreatedAt      time.Time
}
