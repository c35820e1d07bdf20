package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/file"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
)

// FileUploadConfig defines the configuration for generic file uploads
type FileUploadConfig struct {
	FormFieldName string                                         // default "file"
	MaxSizeBytes  int64                                          // 0 = no limit
	AllowedTypes  []string                                       // empty = allow all
	ResizeImage   bool                                           // re-encode as JPEG bounded to 1000x1000
	AfterUpload   func(ctx context.Context, fileID string) error // optional
}

// HandleFileUpload stores the uploaded file and runs AfterUpload. The file is
// removed again if the hook fails.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		response.BadRequest(c, fieldName+" is required", nil)
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f.ID); err != nil {
			if delErr := h.fileService.Delete(c.Request.Context(), f.ID); delErr != nil {
				log.Warn().Err(delErr).Str("file_id", f.ID).Msg("failed to roll back upload")
			}
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
