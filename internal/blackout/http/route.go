package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers blackout date routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/blackout-dates")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
	}

	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.DELETE("/:id", h.Delete)
	}
}
