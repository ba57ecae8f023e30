package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/lock"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

// MemoryRepository keeps bookings in process. Writers of one room are
// serialised by a per-room lock; mu only guards the map itself.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Booking
	rooms *lock.Keyed
	now   func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*Booking),
		rooms: lock.NewKeyed(),
		now:   time.Now,
	}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.RLock()
	matched := make([]*Booking, 0, len(r.items))
	for _, b := range r.items {
		if filter.FacilityID != "" && b.FacilityID != filter.FacilityID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.GuestContact != "" && b.GuestContact != filter.GuestContact {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		cp := *b
		matched = append(matched, &cp)
	}
	r.mu.RUnlock()

	// Newest first, ties broken by id for a stable order.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	start, end := request.ListParams{Page: filter.Page, PageSize: filter.PageSize}.Window(total)
	return matched[start:end], total, nil
}

func (r *MemoryRepository) OverlapCounts(ctx context.Context, roomIDs []string, checkIn, checkOut time.Time) (map[string]int, error) {
	wanted := make(map[string]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(roomIDs))
	for _, b := range r.items {
		if _, ok := wanted[b.RoomID]; !ok {
			continue
		}
		if b.Occupies(checkIn, checkOut) {
			counts[b.RoomID]++
		}
	}
	return counts, nil
}

func (r *MemoryRepository) WithRoomLock(ctx context.Context, roomID string, fn func(tx Tx) error) error {
	unlock := r.rooms.Lock(roomID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(memoryTx{r: r})
}

type memoryTx struct {
	r *MemoryRepository
}

func (t memoryTx) GetByID(ctx context.Context, id string) (*Booking, error) {
	return t.r.GetByID(ctx, id)
}

func (t memoryTx) CountOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error) {
	counts, err := t.r.OverlapCounts(ctx, []string{roomID}, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return counts[roomID], nil
}

func (t memoryTx) Create(ctx context.Context, b *Booking) error {
	now := t.r.now()
	b.ID = uuid.NewString()
	b.CreatedAt = now
	b.UpdatedAt = now

	cp := *b
	t.r.mu.Lock()
	t.r.items[b.ID] = &cp
	t.r.mu.Unlock()
	return nil
}

func (t memoryTx) UpdateStatus(ctx context.Context, b *Booking) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()

	stored, ok := t.r.items[b.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Status = b.Status
	stored.UpdatedAt = t.r.now()
	b.UpdatedAt = stored.UpdatedAt
	return nil
}
