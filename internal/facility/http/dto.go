package http

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

// ListFacilitiesRequest defines query parameters for listing facilities.
type ListFacilitiesRequest struct {
	request.ListParams
	City    string `form:"city" binding:"omitempty,max=100"`
	Keyword string `form:"q" binding:"omitempty,max=100"`
}

type FacilityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Amenities   []string  `json:"amenities"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewFacilityResponse(f *facility.Facility) FacilityResponse {
	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return FacilityResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		City:        f.City,
		State:       f.State,
		Address:     f.Address,
		Phone:       f.Phone,
		Amenities:   amenities,
		CreatedAt:   f.CreatedAt,
	}
}
