package auth

import "github.com/gin-gonic/gin"

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
	isAdminKey   = "isAdmin"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// SetAdmin marks the request as coming from a verified administrator.
func SetAdmin(c *gin.Context) {
	c.Set(isAdminKey, true)
}

// IsAdmin reports whether an upstream middleware verified the caller as administrator.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}
