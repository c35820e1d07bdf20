package site

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "site_not_found", "site not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "invalid_site_name", "site name cannot be empty")
	ErrHasRooms  = apperror.New(http.StatusConflict, "site_has_rooms", "site still has rooms")
)

// Site is a campus building or faculty that owns rooms.
type Site struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}

type Filter struct {
	Keyword  string // Search in Name or Address
	Page     int
	PageSize int
}
