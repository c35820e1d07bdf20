package blackout

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "blackout_not_found", "blackout date not found")
	ErrDateTaken      = apperror.New(http.StatusConflict, "blackout_exists", "date is already blocked")
	ErrReasonRequired = apperror.New(http.StatusBadRequest, "reason_required", "reason is required")
	ErrInvalidRange   = apperror.New(http.StatusBadRequest, "invalid_blackout_range", "date_end must not be before date_start")
)

// BlackoutDate is a calendar day on which no room may be reserved.
// Date is always midnight UTC of the blocked day.
type BlackoutDate struct {
	ID        string
	Date      time.Time
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// Filter defines parameters for listing blackout dates. From and To are inclusive.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// day truncates t to its calendar date at UTC midnight.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
