package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers facility catalogue routes. Rooms, availability and
// ratings under /facilities/:id are registered by their own packages.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/facilities")
	{
		group.GET("", h.List)    // List facilities
		group.GET("/:id", h.Get) // Facility details
	}
}
