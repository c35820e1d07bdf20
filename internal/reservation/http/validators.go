package http

import (
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/validation"
	"github.com/nekogravitycat/locaux-booking-backend/internal/reservation"
)

// RegisterValidators installs the segment, category and reservation_status
// binding tags used by this package's DTOs.
func RegisterValidators() error {
	return validation.RegisterEnums(map[string]validation.EnumFunc{
		"segment":            func(s string) bool { return reservation.Segment(s).Valid() },
		"category":           func(s string) bool { return reservation.Category(s).Valid() },
		"reservation_status": func(s string) bool { return reservation.Status(s).Valid() },
	})
}
