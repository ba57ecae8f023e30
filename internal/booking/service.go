package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pricing"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

type AvailabilityQuery struct {
	FacilityID string
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
}

type CreateRequest struct {
	RoomID       string
	FacilityID   string
	GuestName    string
	GuestContact string
	CheckIn      time.Time
	CheckOut     time.Time
	GuestCount   int
	Notes        string
}

type Service interface {
	// FindAvailableRooms returns the rooms of a facility that fit the party and
	// still have a free unit for every night of the stay, in inventory order.
	FindAvailableRooms(ctx context.Context, q AvailabilityQuery) ([]*room.Room, error)
	Quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (pricing.Quote, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo  Repository
	rooms room.Service
}

func NewService(repo Repository, rooms room.Service) Service {
	return &service{repo: repo, rooms: rooms}
}

// dateRange truncates both ends to calendar dates and rejects empty or inverted stays.
func dateRange(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	in, out := pricing.DateOf(checkIn), pricing.DateOf(checkOut)
	if !in.Before(out) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return in, out, nil
}

func (s *service) FindAvailableRooms(ctx context.Context, q AvailabilityQuery) ([]*room.Room, error) {
	in, out, err := dateRange(q.CheckIn, q.CheckOut)
	if err != nil {
		return nil, err
	}
	if q.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}

	rooms, err := s.rooms.ListRooms(ctx, q.FacilityID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*room.Room, 0, len(rooms))
	ids := make([]string, 0, len(rooms))
	for _, rm := range rooms {
		if rm.Fits(q.GuestCount) {
			candidates = append(candidates, rm)
			ids = append(ids, rm.ID)
		}
	}

	counts, err := s.repo.OverlapCounts(ctx, ids, in, out)
	if err != nil {
		return nil, err
	}

	available := make([]*room.Room, 0, len(candidates))
	for _, rm := range candidates {
		if counts[rm.ID] < rm.TotalUnits {
			available = append(available, rm)
		}
	}
	return available, nil
}

func (s *service) Quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (pricing.Quote, error) {
	in, out, err := dateRange(checkIn, checkOut)
	if err != nil {
		return pricing.Quote{}, err
	}

	rm, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return pricing.NewQuote(rm.NightlyPrice, in, out), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.GuestContact = strings.TrimSpace(req.GuestContact)
	if req.RoomID == "" || req.FacilityID == "" || req.GuestName == "" || req.GuestContact == "" {
		return nil, ErrMissingFields
	}

	in, out, err := dateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.GuestCount < 1 {
		return nil, ErrInvalidGuestCount
	}

	rm, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.FacilityID != req.FacilityID {
		return nil, ErrRoomFacilityMismatch
	}
	if !rm.Fits(req.GuestCount) {
		return nil, ErrExceedsCapacity
	}

	b := &Booking{
		RoomID:       rm.ID,
		FacilityID:   rm.FacilityID,
		GuestName:    req.GuestName,
		GuestContact: req.GuestContact,
		CheckIn:      in,
		CheckOut:     out,
		GuestCount:   req.GuestCount,
		Status:       StatusPending,
		TotalPrice:   pricing.TotalPrice(rm.NightlyPrice, in, out),
		Notes:        req.Notes,
	}

	err = s.repo.WithRoomLock(ctx, rm.ID, func(tx Tx) error {
		n, err := tx.CountOverlapping(ctx, rm.ID, in, out)
		if err != nil {
			return err
		}
		if n >= rm.TotalUnits {
			return ErrFullyBooked
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID).
		Str("room_id", b.RoomID).
		Str("check_in", in.Format(time.DateOnly)).
		Str("check_out", out.Format(time.DateOnly)).
		Int64("total_price", b.TotalPrice).
		Msg("booking created")

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if bookings == nil {
		bookings = []*Booking{}
	}
	return bookings, total, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated *Booking
	err = s.repo.WithRoomLock(ctx, current.RoomID, func(tx Tx) error {
		b, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.CanTransitionTo(status) {
			return apperror.Wrap(ErrInvalidTransition, apperror.KindInvalidTransition,
				fmt.Sprintf("cannot change booking status from %s to %s", b.Status, status))
		}
		b.Status = status
		if err := tx.UpdateStatus(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("booking status changed")

	return updated, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}
