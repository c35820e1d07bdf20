package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "file_not_found", "file not found")
	ErrThumbnailMissing = apperror.New(http.StatusNotFound, "thumbnail_not_found", "thumbnail not available for this file")
	ErrTooLarge         = apperror.New(http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the maximum allowed size")
	ErrUnsupportedType  = apperror.New(http.StatusUnsupportedMediaType, "unsupported_file_type", "file type is not allowed")
	ErrInvalidImage     = apperror.New(http.StatusBadRequest, "invalid_image", "file is not a valid image")
)

// File is an uploaded blob, currently only room photos.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
