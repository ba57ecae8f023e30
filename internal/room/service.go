package room

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/cache"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
)

const (
	cacheGetRoom   = "room:get:"
	cacheListRooms = "room:list:"
)

// Service is the read-only room inventory.
type Service interface {
	// ListRooms returns every room of a facility, including fully booked ones.
	ListRooms(ctx context.Context, facilityID string) ([]*Room, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
}

type service struct {
	repo       Repository
	facilities facility.Service
	cache      cache.Cache
	ttl        time.Duration
}

func NewService(repo Repository, facilities facility.Service, c cache.Cache, ttl time.Duration) Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &service{
		repo:       repo,
		facilities: facilities,
		cache:      c,
		ttl:        ttl,
	}
}

func (s *service) ListRooms(ctx context.Context, facilityID string) ([]*Room, error) {
	key := cacheListRooms + facilityID

	var cached []*Room
	if s.readCache(ctx, key, &cached) {
		if cached == nil {
			cached = []*Room{}
		}
		return cached, nil
	}

	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		return nil, err
	}

	rooms, err := s.repo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*Room{}
	}

	s.writeCache(ctx, key, rooms)
	return rooms, nil
}

func (s *service) GetRoom(ctx context.Context, id string) (*Room, error) {
	key := cacheGetRoom + id

	var cached Room
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, key, res)
	return res, nil
}

// readCache reports a hit. Cache failures are logged and treated as misses.
func (s *service) readCache(ctx context.Context, key string, dest any) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("room cache read failed")
	}
	return false
}

func (s *service) writeCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("room cache write failed")
	}
}
