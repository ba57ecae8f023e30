package room

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Room
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*Room)}
}

// Put inserts or replaces a room definition.
func (r *MemoryRepository) Put(room *Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[room.ID] = clone(room)
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(res), nil
}

func (r *MemoryRepository) ListByFacility(ctx context.Context, facilityID string) ([]*Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Room
	for _, res := range r.items {
		if res.FacilityID == facilityID {
			result = append(result, clone(res))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomNumber == result[j].RoomNumber {
			return result[i].ID < result[j].ID
		}
		return result[i].RoomNumber < result[j].RoomNumber
	})
	return result, nil
}

func clone(r *Room) *Room {
	cp := *r
	cp.Amenities = append([]string(nil), r.Amenities...)
	return &cp
}
