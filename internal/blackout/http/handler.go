package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/blackout"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
)

type Handler struct {
	service blackout.Service
}

func NewHandler(service blackout.Service) *Handler {
	return &Handler{service: service}
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

func (h *Handler) List(c *gin.Context) {
	var req ListBlackoutsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), blackout.Filter{
		From:     optionalDate(req.From),
		To:       optionalDate(req.To),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]BlackoutResponse, len(items))
	for i, b := range items {
		resp[i] = NewBlackoutResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(resp, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBlackoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	date, err := request.ParseDate(body.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), blackout.CreateRequest{
		Date:      date,
		Reason:    body.Reason,
		CreatedBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBlackoutResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
