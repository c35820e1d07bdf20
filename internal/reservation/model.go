package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation_not_found", "reservation not found")
	ErrBlackoutConflict  = apperror.New(http.StatusConflict, "blackout_conflict", "requested dates include a blocked date")
	ErrSlotConflict      = apperror.New(http.StatusConflict, "slot_conflict", "slot already reserved")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "invalid_transition", "reservation cannot change from its current status")
	ErrMissingReason     = apperror.New(http.StatusBadRequest, "missing_reason", "a reason is required")
	ErrNotOwner          = apperror.New(http.StatusForbidden, "not_owner", "only the requester can cancel this reservation")
	ErrTooLate           = apperror.New(http.StatusConflict, "too_late", "reservations must be cancelled at least 12 hours before they start")
	ErrCapacityExceeded  = apperror.New(http.StatusBadRequest, "capacity_exceeded", "estimated participants must be between 1 and 1000")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "invalid_date_range", "date_end must not be before date_start")
	ErrDateInPast        = apperror.New(http.StatusBadRequest, "date_in_past", "cannot reserve a date in the past")
	ErrInvalidSegment    = apperror.New(http.StatusBadRequest, "invalid_segment", "segment must be morning, afternoon or full_day")
	ErrInvalidCategory   = apperror.New(http.StatusBadRequest, "invalid_category", "unknown event category")
	ErrRequesterNotFound = apperror.New(http.StatusNotFound, "requester_not_found", "requesting user not found")
	ErrRoomUnavailable   = apperror.New(http.StatusConflict, "room_unavailable", "room is inactive or under maintenance")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission_denied", "permission denied")

	// ErrRoomNotFound is the room package's own error, surfaced unchanged.
	ErrRoomNotFound = room.ErrNotFound

	// Variants of the taxonomy above with the message each operation surfaces.
	// They match their parent under errors.Is.
	ErrNotPending            = apperror.WithMessage(ErrInvalidTransition, "only pending reservations can be validated")
	ErrAlreadyClosed         = apperror.WithMessage(ErrInvalidTransition, "reservation is already refused or cancelled")
	ErrNotReschedulable      = apperror.WithMessage(ErrInvalidTransition, "only pending reservations can be rescheduled")
	ErrRefusalReasonRequired = apperror.WithMessage(ErrMissingReason, "a reason is required to refuse a reservation")
	ErrCancelReasonRequired  = apperror.WithMessage(ErrMissingReason, "a reason is required to cancel a reservation")
)

// MaxParticipants is the hard cap on estimated participants, whatever the room.
const MaxParticipants = 1000

type Status string

const (
	StatusPending          Status = "pending"
	StatusConfirmed        Status = "confirmed"
	StatusRefused          Status = "refused"
	StatusCancelledByUser  Status = "cancelled_by_user"
	StatusCancelledByAdmin Status = "cancelled_by_admin"
)

// Occupies reports whether a reservation in this status holds its slot.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transition may leave this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusRefused, StatusCancelledByUser, StatusCancelledByAdmin:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	return s.Occupies() || s.Terminal()
}

// OccupyingStatuses lists the statuses that block the calendar.
var OccupyingStatuses = []Status{StatusPending, StatusConfirmed}

type Segment string

const (
	SegmentMorning   Segment = "morning"
	SegmentAfternoon Segment = "afternoon"
	SegmentFullDay   Segment = "full_day"
)

func (s Segment) Valid() bool {
	switch s {
	case SegmentMorning, SegmentAfternoon, SegmentFullDay:
		return true
	}
	return false
}

// Overlaps reports whether two segments of the same day share any time.
// A full day overlaps everything; half days only overlap themselves.
func (s Segment) Overlaps(other Segment) bool {
	if s == SegmentFullDay || other == SegmentFullDay {
		return true
	}
	return s == other
}

type Category string

const (
	CategoryMeeting         Category = "meeting"
	CategoryOfficialHearing Category = "official_hearing"
	CategoryConvention      Category = "convention"
	CategoryConference      Category = "conference"
	CategoryCongress        Category = "congress"
	CategoryOther           Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMeeting, CategoryOfficialHearing, CategoryConvention,
		CategoryConference, CategoryCongress, CategoryOther:
		return true
	}
	return false
}

// Official reports whether events of this category always go through validation.
func (c Category) Official() bool {
	switch c {
	case CategoryOfficialHearing, CategoryConvention, CategoryCongress:
		return true
	}
	return false
}

// Reservation is a request to occupy a room for a segment of one or more days.
// DateStart and DateEnd are calendar dates (midnight UTC), both inclusive.
type Reservation struct {
	ID            string
	RoomID        string
	RoomName      string
	UserID        string
	UserName      string
	DateStart     time.Time
	DateEnd       time.Time
	Segment       Segment
	Category      Category
	Participants  int
	Justification string
	Status        Status

	// Set by validate and refuse.
	DecidedBy    *string
	DecidedAt    *time.Time
	AdminComment *string

	// Set by both cancellations.
	CancelledBy        *string
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Span returns the reservation's inclusive date range.
func (r *Reservation) Span() DateRange {
	return DateRange{Start: r.DateStart, End: r.DateEnd}
}

// Slot returns the (room, dates, segment) tuple the reservation asks for.
func (r *Reservation) Slot() Slot {
	return Slot{RoomID: r.RoomID, Span: r.Span(), Segment: r.Segment}
}

// Slot identifies a requested or held interval of a room.
type Slot struct {
	RoomID  string
	Span    DateRange
	Segment Segment
}

type Filter struct {
	UserID    string
	RoomID    string
	Status    string
	From      *time.Time // Reservations ending on or after this date
	To        *time.Time // Reservations starting on or before this date
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
