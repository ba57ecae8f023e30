package facility

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/request"
)

// MemoryRepository keeps facilities in a map. It is populated through Put,
// usually by the seed loader.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Facility
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*Facility)}
}

// Put inserts or replaces a facility.
func (r *MemoryRepository) Put(f *Facility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *f
	r.items[f.ID] = &cp
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword := strings.ToLower(filter.Keyword)
	matches := make([]*Facility, 0, len(r.items))
	for _, f := range r.items {
		if filter.City != "" && !strings.EqualFold(f.City, filter.City) {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(f.Name), keyword) &&
			!strings.Contains(strings.ToLower(f.Address), keyword) {
			continue
		}
		cp := *f
		matches = append(matches, &cp)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name == matches[j].Name {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Name < matches[j].Name
	})

	total := len(matches)
	start, end := request.ListParams{Page: filter.Page, PageSize: filter.PageSize}.Window(total)

	return matches[start:end], total, nil
}
