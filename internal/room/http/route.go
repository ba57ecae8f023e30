package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room inventory routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/facilities/:id/rooms", h.ListByFacility) // Rooms of a facility

	group := g.Group("/rooms")
	{
		group.GET("/:id", h.Get)         // Room details
		group.GET("/:id/quote", h.Quote) // Price a stay
	}
}
