package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	fileHttp "github.com/nekogravitycat/locaux-booking-backend/internal/file/http"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/locaux-booking-backend/internal/room"
)

const maxPhotoBytes = 5 << 20

var photoTypes = []string{"image/jpeg", "image/png", "image/gif"}

type Handler struct {
	service room.Service
	files   *fileHttp.Handler
}

func NewHandler(service room.Service, files *fileHttp.Handler) *Handler {
	return &Handler{
		service: service,
		files:   files,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		SiteID:      req.SiteID,
		MinCapacity: req.MinCapacity,
		Status:      room.Status(req.Status),
		ActiveOnly:  req.ActiveOnly,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		SiteID:   body.SiteID,
		Name:     body.Name,
		Capacity: body.Capacity,
		Status:   room.Status(body.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRoomResponse(r))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRoomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	req := room.UpdateRequest{
		Name:     body.Name,
		Capacity: body.Capacity,
		IsActive: body.IsActive,
	}
	if body.Status != nil {
		st := room.Status(*body.Status)
		req.Status = &st
	}

	r, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
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

// UploadPhoto replaces the room's photo with the uploaded image.
func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.files.HandleFileUpload(c, fileHttp.FileUploadConfig{
		FormFieldName: "photo",
		MaxSizeBytes:  maxPhotoBytes,
		AllowedTypes:  photoTypes,
		ResizeImage:   true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			_, err := h.service.SetPhoto(ctx, uri.ID, fileID)
			return err
		},
	})
}
