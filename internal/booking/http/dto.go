package http

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/booking"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

// AvailabilityRequest defines query parameters for an availability search.
type AvailabilityRequest struct {
	CheckIn    time.Time `form:"check_in" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	CheckOut   time.Time `form:"check_out" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	GuestCount int       `form:"guests" binding:"omitempty,min=1"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	FacilityID   string `form:"facility_id" binding:"omitempty,max=64"`
	RoomID       string `form:"room_id" binding:"omitempty,max=64"`
	GuestContact string `form:"guest_contact" binding:"omitempty,max=200"`
	Status       string `form:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
}

type CreateBookingRequest struct {
	RoomID       string `json:"room_id" binding:"required,max=64"`
	FacilityID   string `json:"facility_id" binding:"required,max=64"`
	GuestName    string `json:"guest_name" binding:"required,max=200"`
	GuestContact string `json:"guest_contact" binding:"required,max=200"`
	CheckIn      string `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut     string `json:"check_out" binding:"required,datetime=2006-01-02"`
	GuestCount   int    `json:"guest_count" binding:"required,min=1"`
	Notes        string `json:"notes" binding:"max=1000"`
}

// ToServiceRequest parses the wire dates. Binding has already checked their layout.
func (r *CreateBookingRequest) ToServiceRequest() (booking.CreateRequest, error) {
	in, err := request.ParseDate(r.CheckIn)
	if err != nil {
		return booking.CreateRequest{}, err
	}
	out, err := request.ParseDate(r.CheckOut)
	if err != nil {
		return booking.CreateRequest{}, err
	}
	return booking.CreateRequest{
		RoomID:       r.RoomID,
		FacilityID:   r.FacilityID,
		GuestName:    r.GuestName,
		GuestContact: r.GuestContact,
		CheckIn:      in,
		CheckOut:     out,
		GuestCount:   r.GuestCount,
		Notes:        r.Notes,
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	FacilityID   string    `json:"facility_id"`
	GuestName    string    `json:"guest_name"`
	GuestContact string    `json:"guest_contact"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	GuestCount   int       `json:"guest_count"`
	Status       string    `json:"status"`
	TotalPrice   int64     `json:"total_price"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		FacilityID:   b.FacilityID,
		GuestName:    b.GuestName,
		GuestContact: b.GuestContact,
		CheckIn:      b.CheckIn.Format(request.DateLayout),
		CheckOut:     b.CheckOut.Format(request.DateLayout),
		GuestCount:   b.GuestCount,
		Status:       string(b.Status),
		TotalPrice:   b.TotalPrice,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
