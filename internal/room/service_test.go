package room

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/cache"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
)

// mapCache is an in-process Cache used to observe read-through behaviour.
type mapCache struct {
	data   map[string][]byte
	gets   int
	failOn bool
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) error {
	c.gets++
	if c.failOn {
		return errors.New("connection refused")
	}
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.failOn {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

// countingRepo counts repository hits.
type countingRepo struct {
	Repository
	lists int
	gets  int
}

func (r *countingRepo) ListByFacility(ctx context.Context, facilityID string) ([]*Room, error) {
	r.lists++
	return r.Repository.ListByFacility(ctx, facilityID)
}

func (r *countingRepo) GetByID(ctx context.Context, id string) (*Room, error) {
	r.gets++
	return r.Repository.GetByID(ctx, id)
}

func setup(c cache.Cache) (Service, *countingRepo) {
	facRepo := facility.NewMemoryRepository()
	facRepo.Put(&facility.Facility{ID: "f1", Name: "Palitana Bhawan"})
	facRepo.Put(&facility.Facility{ID: "f-empty", Name: "Empty Bhawan"})

	mem := NewMemoryRepository()
	mem.Put(&Room{ID: "r-201", FacilityID: "f1", RoomNumber: "201", Type: TypeDouble, Capacity: 2, NightlyPrice: 800, TotalUnits: 8, Amenities: []string{"WiFi", "AC"}})
	mem.Put(&Room{ID: "r-101", FacilityID: "f1", RoomNumber: "101", Type: TypeSingle, Capacity: 1, NightlyPrice: 500, TotalUnits: 5})
	mem.Put(&Room{ID: "r-other", FacilityID: "f2", RoomNumber: "101", Type: TypeSingle, Capacity: 1, NightlyPrice: 400, TotalUnits: 1})

	repo := &countingRepo{Repository: mem}
	return NewService(repo, facility.NewService(facRepo), c, time.Minute), repo
}

func TestListRooms(t *testing.T) {
	svc, _ := setup(nil)
	ctx := context.Background()

	rooms, err := svc.ListRooms(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "r-101", rooms[0].ID, "rooms are ordered by room number")
	assert.Equal(t, "r-201", rooms[1].ID)

	empty, err := svc.ListRooms(ctx, "f-empty")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.ListRooms(ctx, "f-unknown")
	assert.ErrorIs(t, err, facility.ErrNotFound)
}

func TestGetRoom(t *testing.T) {
	svc, _ := setup(nil)
	ctx := context.Background()

	r, err := svc.GetRoom(ctx, "r-201")
	require.NoError(t, err)
	assert.Equal(t, int64(800), r.NightlyPrice)
	assert.Equal(t, []string{"WiFi", "AC"}, r.Amenities)

	_, err = svc.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadThroughCache(t *testing.T) {
	c := newMapCache()
	svc, repo := setup(c)
	ctx := context.Background()

	first, err := svc.ListRooms(ctx, "f1")
	require.NoError(t, err)
	second, err := svc.ListRooms(ctx, "f1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lists, "second call is served from cache")
	assert.Equal(t, first, second)

	_, err = svc.GetRoom(ctx, "r-101")
	require.NoError(t, err)
	cached, err := svc.GetRoom(ctx, "r-101")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, "101", cached.RoomNumber)
}

func TestCacheFailureFallsThrough(t *testing.T) {
	c := newMapCache()
	c.failOn = true
	svc, repo := setup(c)

	rooms, err := svc.ListRooms(context.Background(), "f1")
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, 1, repo.lists)
}

func TestFits(t *testing.T) {
	r := &Room{Capacity: 2}
	assert.True(t, r.Fits(1))
	assert.True(t, r.Fits(2))
	assert.False(t, r.Fits(3))
}
