package booking

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(apperror.KindNotFound, "booking not found")
	ErrMissingFields        = apperror.New(apperror.KindValidation, "missing required fields: room_id, facility_id, guest_name, guest_contact")
	ErrInvalidDateRange     = apperror.New(apperror.KindValidation, "check-in date must be before check-out date")
	ErrInvalidGuestCount    = apperror.New(apperror.KindValidation, "guest count must be at least 1")
	ErrExceedsCapacity      = apperror.New(apperror.KindValidation, "guest count exceeds room capacity")
	ErrRoomFacilityMismatch = apperror.New(apperror.KindValidation, "room does not belong to facility")
	ErrInvalidStatus        = apperror.New(apperror.KindValidation, "invalid booking status")
	ErrFullyBooked          = apperror.New(apperror.KindCapacityExceeded, "room is fully booked for the requested dates")
	ErrInvalidTransition    = apperror.New(apperror.KindInvalidTransition, "invalid booking status transition")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

// transitions lists the statuses reachable in one step. Terminal statuses have no entry.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking reserves one unit of a room type for [CheckIn, CheckOut).
// CheckIn and CheckOut are calendar dates at UTC midnight and never change.
type Booking struct {
	ID           string
	RoomID       string
	FacilityID   string
	GuestName    string
	GuestContact string
	CheckIn      time.Time
	CheckOut     time.Time
	GuestCount   int
	Status       Status
	TotalPrice   int64
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlaps is the half-open interval test for [aStart, aEnd) and [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Occupies reports whether b holds a unit of its room during [checkIn, checkOut).
func (b *Booking) Occupies(checkIn, checkOut time.Time) bool {
	return b.Status != StatusCancelled && Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut)
}

type Filter struct {
	FacilityID   string
	RoomID       string
	GuestContact string
	Status       Status
	Page         int
	PageSize     int
}
