package facility

import (
	"time"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(apperror.KindNotFound, "facility not found")
)

// Facility is a dharamshala offering one or more room types.
type Facility struct {
	ID          string
	Name        string
	Description string
	City        string
	State       string
	Address     string
	Phone       string
	Amenities   []string
	CreatedAt   time.Time
}

// Filter defines parameters for listing facilities.
type Filter struct {
	City     string
	Keyword  string // Search in Name or Address
	Page     int
	PageSize int
}
