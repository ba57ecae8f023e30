package http

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pricing"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

type RoomResponse struct {
	ID           string   `json:"id"`
	FacilityID   string   `json:"facility_id"`
	RoomNumber   string   `json:"room_number"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity"`
	NightlyPrice int64    `json:"nightly_price"`
	TotalUnits   int      `json:"total_units"`
	Amenities    []string `json:"amenities"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return RoomResponse{
		ID:           r.ID,
		FacilityID:   r.FacilityID,
		RoomNumber:   r.RoomNumber,
		Type:         string(r.Type),
		Description:  r.Description,
		Capacity:     r.Capacity,
		NightlyPrice: r.NightlyPrice,
		TotalUnits:   r.TotalUnits,
		Amenities:    amenities,
	}
}

func NewRoomListResponse(rooms []*room.Room) []RoomResponse {
	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	return items
}

// StayRequest is the date range query shared by quote and availability lookups.
type StayRequest struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

type QuoteResponse struct {
	RoomID       string `json:"room_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Nights       int    `json:"nights"`
	NightlyPrice int64  `json:"nightly_price"`
	TotalPrice   int64  `json:"total_price"`
}

func NewQuoteResponse(roomID string, req StayRequest, q pricing.Quote) QuoteResponse {
	return QuoteResponse{
		RoomID:       roomID,
		CheckIn:      req.CheckIn.Format(request.DateLayout),
		CheckOut:     req.CheckOut.Format(request.DateLayout),
		Nights:       q.Nights,
		NightlyPrice: q.NightlyPrice,
		TotalPrice:   q.Total,
	}
}
