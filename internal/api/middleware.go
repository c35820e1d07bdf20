package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/locaux-booking-backend/internal/auth"
	"github.com/nekogravitycat/locaux-booking-backend/internal/pkg/response"
)

// AdminChecker reports whether a user currently holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// ResolveRole marks administrators in the request context and lets everyone through.
// It MUST be used after auth.AuthRequired middleware.
func ResolveRole(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, err := checker.IsAdmin(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if isAdmin {
			auth.SetAdmin(c)
		}
		c.Next()
	}
}

// RequireAdmin ensures the authenticated user is an administrator.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.IsAdmin(c) {
			c.Next()
			return
		}

		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{
				Error: "forbidden: admin access required",
				Code:  "forbidden",
			})
			return
		}

		auth.SetAdmin(c)
		c.Next()
	}
}
