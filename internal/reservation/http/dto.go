package http

import (
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/reservation"
)

type ListReservationsRequest struct {
	request.ListParams
	RoomID string `form:"room_id" binding:"omitempty,uuid"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,reservation_status"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=date_start created_at"`
}

type CreateReservationRequest struct {
	RoomID        string `json:"room_id" binding:"required,uuid"`
	DateStart     string `json:"date_start" binding:"required,datetime=2006-01-02"`
	DateEnd       string `json:"date_end" binding:"required,datetime=2006-01-02"`
	Segment       string `json:"segment" binding:"required,segment"`
	Category      string `json:"category" binding:"required,category"`
	Participants  int    `json:"participants"`
	Justification string `json:"justification"`
}

// AdminCreateReservationRequest books a room on behalf of UserID.
type AdminCreateReservationRequest struct {
	CreateReservationRequest
	UserID string `json:"user_id" binding:"required,uuid"`
}

type RescheduleReservationRequest struct {
	DateStart *string `json:"date_start" binding:"omitempty,datetime=2006-01-02"`
	DateEnd   *string `json:"date_end" binding:"omitempty,datetime=2006-01-02"`
	Segment   *string `json:"segment" binding:"omitempty,segment"`
}

type ValidateReservationRequest struct {
	Comment string `json:"comment"`
}

// ReasonRequest is the body of refuse and both cancellations.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

type AvailabilityRequest struct {
	From    string `form:"from" binding:"required,datetime=2006-01-02"`
	To      string `form:"to" binding:"required,datetime=2006-01-02"`
	Segment string `form:"segment" binding:"required,segment"`
}

type CalendarRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReservationResponse struct {
	ID                 string     `json:"id"`
	Room               Tag        `json:"room"`
	User               Tag        `json:"user"`
	DateStart          string     `json:"date_start"`
	DateEnd            string     `json:"date_end"`
	Segment            string     `json:"segment"`
	Category           string     `json:"category"`
	Participants       int        `json:"participants"`
	Justification      string     `json:"justification"`
	Status             string     `json:"status"`
	DecidedBy          *string    `json:"decided_by,omitempty"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	AdminComment       *string    `json:"admin_comment,omitempty"`
	CancelledBy        *string    `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                 r.ID,
		Room:               Tag{ID: r.RoomID, Name: r.RoomName},
		User:               Tag{ID: r.UserID, Name: r.UserName},
		DateStart:          r.DateStart.Format(request.DateLayout),
		DateEnd:            r.DateEnd.Format(request.DateLayout),
		Segment:            string(r.Segment),
		Category:           string(r.Category),
		Participants:       r.Participants,
		Justification:      r.Justification,
		Status:             string(r.Status),
		DecidedBy:          r.DecidedBy,
		DecidedAt:          r.DecidedAt,
		AdminComment:       r.AdminComment,
		CancelledBy:        r.CancelledBy,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func NewReservationResponses(items []*reservation.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(items))
	for i, r := range items {
		out[i] = NewReservationResponse(r)
	}
	return out
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Segment   string `json:"segment"`
	Available bool   `json:"available"`
}

type CalendarResponse struct {
	RoomID       string                `json:"room_id"`
	From         string                `json:"from"`
	To           string                `json:"to"`
	Reservations []ReservationResponse `json:"reservations"`
}
