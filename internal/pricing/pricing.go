// Package pricing derives stay length and price from a date range.
// It holds no state.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Quote is the price breakdown for one room over a stay.
type Quote struct {
	Nights       int
	NightlyPrice int64
	Total        int64
}

// DateOf returns the calendar date of t as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NightsBetween returns the number of nights between two calendar dates.
// Same-day and inverted ranges count as one night.
func NightsBetween(checkIn, checkOut time.Time) int {
	diff := DateOf(checkOut).Sub(DateOf(checkIn))
	nights := int(math.Ceil(float64(diff) / float64(day)))
	if nights < 1 {
		return 1
	}
	return nights
}

// TotalPrice is nightlyPrice multiplied by NightsBetween. No taxes or discounts.
func TotalPrice(nightlyPrice int64, checkIn, checkOut time.Time) int64 {
	return nightlyPrice * int64(NightsBetween(checkIn, checkOut))
}

// NewQuote builds the full breakdown for a stay.
func NewQuote(nightlyPrice int64, checkIn, checkOut time.Time) Quote {
	nights := NightsBetween(checkIn, checkOut)
	return Quote{
		Nights:       nights,
		NightlyPrice: nightlyPrice,
		Total:        nightlyPrice * int64(nights),
	}
}
