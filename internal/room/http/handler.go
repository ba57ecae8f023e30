package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/booking"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

type Handler struct {
	service  room.Service
	bookings booking.Service
}

func NewHandler(service room.Service, bookings booking.Service) *Handler {
	return &Handler{
		service:  service,
		bookings: bookings,
	}
}

// ListByFacility returns every room of a facility, including fully booked ones.
func (h *Handler) ListByFacility(c *gin.Context) {
	var uri request.BySlugRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": NewRoomListResponse(rooms)})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.BySlugRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := h.service.GetRoom(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(r))
}

// Quote prices a stay in a room without reserving it.
func (h *Handler) Quote(c *gin.Context) {
	var uri request.BySlugRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req StayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	q, err := h.bookings.Quote(c.Request.Context(), uri.ID, req.CheckIn, req.CheckOut)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewQuoteResponse(uri.ID, req, q))
}
