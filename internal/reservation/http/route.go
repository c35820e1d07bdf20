package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation routes and the per-room availability views.
// roleMiddleware resolves the caller's admin flag without rejecting anyone.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, roleMiddleware, adminMiddleware gin.HandlerFunc) {
	rooms := g.Group("/rooms/:id")
	rooms.Use(authMiddleware)
	{
		rooms.GET("/availability", h.Availability)
		rooms.GET("/calendar", h.Calendar)
	}

	group := g.Group("/reservations")
	group.Use(authMiddleware, roleMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Reschedule)
		group.POST("/:id/cancel", h.Cancel)
		group.GET("/:id/history", h.History)
	}

	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("/:id/validate", h.Validate)
		adminGroup.POST("/:id/refuse", h.Refuse)
		adminGroup.POST("/:id/admin-cancel", h.AdminCancel)
	}

	admin := g.Group("/admin/reservations")
	admin.Use(authMiddleware, roleMiddleware, adminMiddleware)
	{
		admin.POST("", h.AdminCreate)
	}
}
