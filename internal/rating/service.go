package rating

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/booking"
)

type SubmitRequest struct {
	BookingID   string
	GuestName   string
	GuestEmail  string
	Overall     int
	Cleanliness int
	Comfort     int
	Hospitality int
	Value       int
	Comment     string
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Rating, error)
	GetByID(ctx context.Context, id string) (*Rating, error)
	ListByFacility(ctx context.Context, facilityID string, page, pageSize int) ([]*Rating, int, error)
	Summary(ctx context.Context, facilityID string) (*Summary, error)
	IsBookingRated(ctx context.Context, bookingID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	bookings booking.Service
}

func NewService(repo Repository, bookings booking.Service) Service {
	return &service{repo: repo, bookings: bookings}
}

// validScores checks the overall score is in range and every category score is either unset or in range.
func validScores(req SubmitRequest) bool {
	if req.Overall < MinScore || req.Overall > MaxScore {
		return false
	}
	for _, s := range []int{req.Cleanliness, req.Comfort, req.Hospitality, req.Value} {
		if s != 0 && (s < MinScore || s > MaxScore) {
			return false
		}
	}
	return true
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Rating, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, ErrMissingBookingID
	}
	if !validScores(req) {
		return nil, ErrScoreOutOfRange
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusCheckedOut {
		return nil, ErrNotCompleted
	}

	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		guestName = b.GuestName
	}

	r := &Rating{
		BookingID:   b.ID,
		FacilityID:  b.FacilityID,
		GuestName:   guestName,
		GuestEmail:  strings.TrimSpace(req.GuestEmail),
		Overall:     req.Overall,
		Cleanliness: req.Cleanliness,
		Comfort:     req.Comfort,
		Hospitality: req.Hospitality,
		Value:       req.Value,
		Comment:     strings.TrimSpace(req.Comment),
		VisitDate:   b.CheckIn,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	log.Info().
		Str("rating_id", r.ID).
		Str("facility_id", r.FacilityID).
		Int("overall", r.Overall).
		Msg("rating submitted")

	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Rating, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByFacility(ctx context.Context, facilityID string, page, pageSize int) ([]*Rating, int, error) {
	ratings, total, err := s.repo.ListByFacility(ctx, facilityID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if ratings == nil {
		ratings = []*Rating{}
	}
	return ratings, total, nil
}

func (s *service) Summary(ctx context.Context, facilityID string) (*Summary, error) {
	ratings, err := s.repo.AllByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return summarize(ratings), nil
}

func (s *service) IsBookingRated(ctx context.Context, bookingID string) (bool, error) {
	_, err := s.repo.GetByBookingID(ctx, bookingID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("rating_id", id).Msg("rating deleted")
	return nil
}

// mean accumulates the scores that were given. Zero means not given.
type mean struct {
	sum, n int
}

func (m *mean) add(score int) {
	if score > 0 {
		m.sum += score
		m.n++
	}
}

func (m mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return math.Round(float64(m.sum)/float64(m.n)*10) / 10
}

func summarize(ratings []*Rating) *Summary {
	var overall, cleanliness, comfort, hospitality, value mean
	for _, r := range ratings {
		overall.add(r.Overall)
		cleanliness.add(r.Cleanliness)
		comfort.add(r.Comfort)
		hospitality.add(r.Hospitality)
		value.add(r.Value)
	}
	return &Summary{
		Count:       len(ratings),
		Overall:     overall.value(),
		Cleanliness: cleanliness.value(),
		Comfort:     comfort.value(),
		Hospitality: hospitality.value(),
		Value:       value.value(),
	}
}
