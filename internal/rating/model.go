package rating

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "rating not found")
	ErrAlreadyRated     = apperror.New(apperror.KindConflict, "booking has already been rated")
	ErrNotCompleted     = apperror.New(apperror.KindValidation, "booking is not completed")
	ErrScoreOutOfRange  = apperror.New(apperror.KindValidation, "all ratings must be between 1 and 5")
	ErrMissingBookingID = apperror.New(apperror.KindValidation, "missing required field: booking_id")
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a guest's review of a completed stay. Category scores are 0 when not given.
type Rating struct {
	ID          string
	BookingID   string
	FacilityID  string
	GuestName   string
	GuestEmail  string
	Overall     int
	Cleanliness int
	Comfort     int
	Hospitality int
	Value       int
	Comment     string
	VisitDate   time.Time
	CreatedAt   time.Time
}

// Summary aggregates a facility's ratings. Averages are rounded to one decimal.
type Summary struct {
	Count       int
	Overall     float64
	Cleanliness float64
	Comfort     float64
	Hospitality float64
	Value       float64
}
