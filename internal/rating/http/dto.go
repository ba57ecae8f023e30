package http

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/rating"
)

type SubmitRatingRequest struct {
	BookingID   string `json:"booking_id" binding:"required,uuid"`
	GuestName   string `json:"guest_name" binding:"max=200"`
	GuestEmail  string `json:"guest_email" binding:"omitempty,email"`
	Overall     int    `json:"overall_rating" binding:"required"`
	Cleanliness int    `json:"cleanliness"`
	Comfort     int    `json:"comfort"`
	Hospitality int    `json:"hospitality"`
	Value       int    `json:"value"`
	Comment     string `json:"comment" binding:"max=2000"`
}

func (r *SubmitRatingRequest) ToServiceRequest() rating.SubmitRequest {
	return rating.SubmitRequest{
		BookingID:   r.BookingID,
		GuestName:   r.GuestName,
		GuestEmail:  r.GuestEmail,
		Overall:     r.Overall,
		Cleanliness: r.Cleanliness,
		Comfort:     r.Comfort,
		Hospitality: r.Hospitality,
		Value:       r.Value,
		Comment:     r.Comment,
	}
}

type RatingResponse struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	FacilityID  string    `json:"facility_id"`
	GuestName   string    `json:"guest_name"`
	Overall     int       `json:"overall_rating"`
	Cleanliness int       `json:"cleanliness"`
	Comfort     int       `json:"comfort"`
	Hospitality int       `json:"hospitality"`
	Value       int       `json:"value"`
	Comment     string    `json:"comment"`
	VisitDate   string    `json:"visit_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRatingResponse omits the guest email, which is never published.
func NewRatingResponse(r *rating.Rating) RatingResponse {
	return RatingResponse{
		ID:          r.ID,
		BookingID:   r.BookingID,
		FacilityID:  r.FacilityID,
		GuestName:   r.GuestName,
		Overall:     r.Overall,
		Cleanliness: r.Cleanliness,
		Comfort:     r.Comfort,
		Hospitality: r.Hospitality,
		Value:       r.Value,
		Comment:     r.Comment,
		VisitDate:   r.VisitDate.Format(request.DateLayout),
		CreatedAt:   r.CreatedAt,
	}
}

type SummaryResponse struct {
	FacilityID  string  `json:"facility_id"`
	Count       int     `json:"count"`
	Overall     float64 `json:"overall_rating"`
	Cleanliness float64 `json:"cleanliness"`
	Comfort     float64 `json:"comfort"`
	Hospitality float64 `json:"hospitality"`
	Value       float64 `json:"value"`
}

func NewSummaryResponse(facilityID string, s *rating.Summary) SummaryResponse {
	return SummaryResponse{
		FacilityID:  facilityID,
		Count:       s.Count,
		Overall:     s.Overall,
		Cleanliness: s.Cleanliness,
		Comfort:     s.Comfort,
		Hospitality: s.Hospitality,
		Value:       s.Value,
	}
}
