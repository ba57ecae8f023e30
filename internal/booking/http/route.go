package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/facilities/:id/availability", h.Availability)

	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/complete", h.Complete)
	}
}
