package room

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room_not_found", "room not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "invalid_room_name", "room name cannot be empty")
	ErrInvalidSite     = apperror.New(http.StatusBadRequest, "invalid_site", "invalid site_id")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "invalid_capacity", "capacity must be positive")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "invalid_status", "invalid room status")
	ErrHasReservations = apperror.New(http.StatusConflict, "room_has_reservations", "room still has reservations")
)

// Status is the operational state of a room as set by administrators.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// Room is a bookable university space.
type Room struct {
	ID        string
	SiteID    string
	SiteName  string
	Name      string
	Capacity  int
	IsActive  bool
	Status    Status
	PhotoID   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bookable reports whether new reservations may be placed on the room.
// An occupied room is still bookable for future dates.
func (r *Room) Bookable() bool {
	return r.IsActive && r.Status != StatusMaintenance
}

// Filter defines parameters for listing rooms.
type Filter struct {
	SiteID      string
	MinCapacity int
	Status      Status
	ActiveOnly  bool
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
