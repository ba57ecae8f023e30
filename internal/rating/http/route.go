package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers rating routes, including the per-facility and
// per-booking views.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/facilities/:id/ratings", h.ListByFacility)
	g.GET("/facilities/:id/ratings/summary", h.Summary)
	g.GET("/bookings/:id/rating", h.BookingRated)

	group := g.Group("/ratings")
	{
		group.POST("", h.Submit)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Delete)
	}
}
