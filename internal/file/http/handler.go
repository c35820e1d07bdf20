package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/locaux-booking-backend/internal/file"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
)

type Handler struct {
	fileService file.Service
}

func NewHandler(fileService file.Service) *Handler {
	return &Handler{
		fileService: fileService,
	}
}

func stream(c *gin.Context, body io.ReadCloser, contentType, filename string) {
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "inline; filename=\""+filename+"\"")
	c.Header("Cache-Control", "private, max-age=86400")
	c.Status(http.StatusOK)

	// The status line is already sent; a copy failure can only be logged.
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("file stream interrupted")
	}
}

// ServeFile serves the file content by ID
func (h *Handler) ServeFile(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	body, f, err := h.fileService.Download(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, body, f.ContentType, f.Filename)
}

// ServeThumbnail serves the thumbnail image by file ID
func (h *Handler) ServeThumbnail(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid file id", err)
		return
	}

	body, f, err := h.fileService.DownloadThumbnail(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	stream(c, body, "image/jpeg", f.Filename+"_thumb.jpg")
}
