package room

import (
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(apperror.KindNotFound, "room not found")
)

type Type string

const (
	TypeSingle    Type = "single"
	TypeDouble    Type = "double"
	TypeDormitory Type = "dormitory"
	TypeFamily    Type = "family"
	TypeSuite     Type = "suite"
)

// Valid reports whether t is a known room type.
func (t Type) Valid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeDormitory, TypeFamily, TypeSuite:
		return true
	}
	return false
}

// Room is a bookable room type within a facility. TotalUnits physical rooms
// of this type are interchangeable.
type Room struct {
	ID           string   `json:"id"`
	FacilityID   string   `json:"facility_id"`
	RoomNumber   string   `json:"room_number"`
	Type         Type     `json:"type"`
	Description  string   `json:"description"`
	Capacity     int      `json:"capacity"`
	NightlyPrice int64    `json:"nightly_price"`
	TotalUnits   int      `json:"total_units"`
	Amenities    []string `json:"amenities"`
}

// Fits reports whether the room can hold guestCount guests.
func (r *Room) Fits(guestCount int) bool {
	return r.Capacity >= guestCount
}
