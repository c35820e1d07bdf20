package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/locaux-booking-backend/internal/audit"
	auditHttp "github.com/nekogravitycat/locaux-booking-backend/internal/audit/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/locaux-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
	history audit.Service
}

func NewHandler(service reservation.Service, history audit.Service) *Handler {
	return &Handler{
		service: service,
		history: history,
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := request.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}

func parseSpan(c *gin.Context, from, to string) (time.Time, time.Time, bool) {
	start, err := request.ParseDate(from)
	if err != nil {
		response.BadRequest(c, "invalid start date", err)
		return time.Time{}, time.Time{}, false
	}
	end, err := request.ParseDate(to)
	if err != nil {
		response.BadRequest(c, "invalid end date", err)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// bindOptionalJSON binds a body that may be omitted entirely.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid request body", err)
		return false
	}
	return true
}

// visible loads a reservation the caller may read: its owner or an administrator.
func (h *Handler) visible(c *gin.Context, id string) (*reservation.Reservation, bool) {
	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if r.UserID != auth.GetUserID(c) && !auth.IsAdmin(c) {
		response.Error(c, reservation.ErrPermissionDenied)
		return nil, false
	}
	return r, true
}

// List returns reservations. Non-administrators only ever see their own.
func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := reservation.Filter{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Status:    req.Status,
		From:      optionalDate(req.From),
		To:        optionalDate(req.To),
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if !auth.IsAdmin(c) {
		filter.UserID = auth.GetUserID(c)
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPageResponse(NewReservationResponses(items), req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, ok := h.visible(c, uri.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) History(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if _, ok := h.visible(c, uri.ID); !ok {
		return
	}

	entries, err := h.history.History(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": auditHttp.NewEntryResponses(entries)})
}

func (h *Handler) create(c *gin.Context, body CreateReservationRequest, requesterID string, byAdmin bool) {
	start, end, ok := parseSpan(c, body.DateStart, body.DateEnd)
	if !ok {
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), reservation.CreateRequest{
		RoomID:        body.RoomID,
		RequesterID:   requesterID,
		ActorID:       auth.GetUserID(c),
		ByAdmin:       byAdmin,
		DateStart:     start,
		DateEnd:       end,
		Segment:       reservation.Segment(body.Segment),
		Category:      reservation.Category(body.Category),
		Participants:  body.Participants,
		Justification: body.Justification,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

// Create books a room for the caller.
func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	h.create(c, body, auth.GetUserID(c), false)
}

// AdminCreate books a room on behalf of another user.
func (h *Handler) AdminCreate(c *gin.Context) {
	var body AdminCreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}
	h.create(c, body.CreateReservationRequest, body.UserID, true)
}

// Reschedule moves a pending reservation owned by the caller.
func (h *Handler) Reschedule(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body RescheduleReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	var req reservation.RescheduleRequest
	if body.DateStart != nil {
		req.DateStart = optionalDate(*body.DateStart)
	}
	if body.DateEnd != nil {
		req.DateEnd = optionalDate(*body.DateEnd)
	}
	if body.Segment != nil {
		seg := reservation.Segment(*body.Segment)
		req.Segment = &seg
	}

	r, err := h.service.Reschedule(c.Request.Context(), uri.ID, auth.GetUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

type decisionFunc func(c *gin.Context, id, actorID, text string) (*reservation.Reservation, error)

// decide binds the id and the optional reason body, then applies fn.
func (h *Handler) decide(c *gin.Context, fn decisionFunc) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body ReasonRequest
	if !bindOptionalJSON(c, &body) {
		return
	}

	r, err := fn(c, uri.ID, auth.GetUserID(c), body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

// Cancel is the requester's own cancellation.
func (h *Handler) Cancel(c *gin.Context) {
	h.decide(c, func(c *gin.Context, id, actorID, reason string) (*reservation.Reservation, error) {
		return h.service.CancelByUser(c.Request.Context(), id, actorID, reason)
	})
}

func (h *Handler) Validate(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body ValidateReservationRequest
	if !bindOptionalJSON(c, &body) {
		return
	}

	r, err := h.service.ValidateReservation(c.Request.Context(), uri.ID, auth.GetUserID(c), body.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Refuse(c *gin.Context) {
	h.decide(c, func(c *gin.Context, id, actorID, reason string) (*reservation.Reservation, error) {
		return h.service.RefuseReservation(c.Request.Context(), id, actorID, reason)
	})
}

func (h *Handler) AdminCancel(c *gin.Context) {
	h.decide(c, func(c *gin.Context, id, actorID, reason string) (*reservation.Reservation, error) {
		return h.service.CancelByAdmin(c.Request.Context(), id, actorID, reason)
	})
}

// Availability answers whether a room's slot is free. Blackout dates are not considered.
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	start, end, ok := parseSpan(c, req.From, req.To)
	if !ok {
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), uri.ID, start, end, reservation.Segment(req.Segment))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{
		RoomID:    uri.ID,
		From:      req.From,
		To:        req.To,
		Segment:   req.Segment,
		Available: available,
	})
}

// Calendar lists the reservations holding a room between two dates.
func (h *Handler) Calendar(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var req CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	start, end, ok := parseSpan(c, req.From, req.To)
	if !ok {
		return
	}

	items, err := h.service.Calendar(c.Request.Context(), uri.ID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, CalendarResponse{
		RoomID:       uri.ID,
		From:         req.From,
		To:           req.To,
		Reservations: NewReservationResponses(items),
	})
}
