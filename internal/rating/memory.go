package rating

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

type MemoryRepository struct {
	mu        sync.RWMutex
	items     map[string]*Rating
	byBooking map[string]string
	now       func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:     make(map[string]*Rating),
		byBooking: make(map[string]string),
		now:       time.Now,
	}
}

func (m *MemoryRepository) Create(ctx context.Context, r *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byBooking[r.BookingID]; ok {
		return ErrAlreadyRated
	}

	r.ID = uuid.NewString()
	r.CreatedAt = m.now()

	cp := *r
	m.items[r.ID] = &cp
	m.byBooking[r.BookingID] = r.ID
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id string) (*Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryRepository) GetByBookingID(ctx context.Context, bookingID string) (*Rating, error) {
	m.mu.RLock()
	id, ok := m.byBooking[bookingID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *MemoryRepository) ListByFacility(ctx context.Context, facilityID string, page, pageSize int) ([]*Rating, int, error) {
	all, err := m.AllByFacility(ctx, facilityID)
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	start, end := request.ListParams{Page: page, PageSize: pageSize}.Window(total)
	return all[start:end], total, nil
}

func (m *MemoryRepository) AllByFacility(ctx context.Context, facilityID string) ([]*Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Rating, 0)
	for _, r := range m.items {
		if r.FacilityID == facilityID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byBooking, r.BookingID)
	delete(m.items, id)
	return nil
}
