package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/validation"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it logs the failure and answers 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

// BadRequest sends a 400 for malformed input that never reached the service layer.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "code": "invalid_request"}
	if err != nil {
		body["details"] = validation.Describe(err)
	}
	c.JSON(http.StatusBadRequest, body)
}
