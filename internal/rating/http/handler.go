package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/rating"
)

type Handler struct {
	service    rating.Service
	facilities facility.Service
}

func NewHandler(service rating.Service, facilities facility.Service) *Handler {
	return &Handler{
		service:    service,
		facilities: facilities,
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var body SubmitRatingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Submit(c.Request.Context(), body.ToServiceRequest())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRatingResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRatingResponse(r))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByFacility returns a facility's ratings, newest first.
func (h *Handler) ListByFacility(c *gin.Context) {
	var uri request.BySlugRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	params = params.Normalize()

	ctx := c.Request.Context()
	if _, err := h.facilities.GetByID(ctx, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	ratings, total, err := h.service.ListByFacility(ctx, uri.ID, params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RatingResponse, len(ratings))
	for i, r := range ratings {
		items[i] = NewRatingResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *Handler) Summary(c *gin.Context) {
	var uri request.BySlugRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.facilities.GetByID(ctx, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	s, err := h.service.Summary(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSummaryResponse(uri.ID, s))
}

// BookingRated reports whether a booking already has a rating.
func (h *Handler) BookingRated(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rated, err := h.service.IsBookingRated(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking_id": uri.ID, "rated": rated})
}
