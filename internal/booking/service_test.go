package booking

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	svc   Service
	repo  *MemoryRepository
	rooms *room.MemoryRepository
}

func setup(t *testing.T) fixture {
	t.Helper()

	facilities := facility.NewMemoryRepository()
	facilities.Put(&facility.Facility{ID: "f1", Name: "Shri Mahavir Dharamshala", City: "Palitana"})
	facilities.Put(&facility.Facility{ID: "f2", Name: "Parshwanath Bhavan", City: "Shikharji"})

	rooms := room.NewMemoryRepository()
	rooms.Put(&room.Room{ID: "r-single", FacilityID: "f1", RoomNumber: "101", Type: room.TypeSingle, Capacity: 1, NightlyPrice: 300, TotalUnits: 1})
	rooms.Put(&room.Room{ID: "r-double", FacilityID: "f1", RoomNumber: "102", Type: room.TypeDouble, Capacity: 2, NightlyPrice: 500, TotalUnits: 1})
	rooms.Put(&room.Room{ID: "r-dorm", FacilityID: "f1", RoomNumber: "201", Type: room.TypeDormitory, Capacity: 6, NightlyPrice: 150, TotalUnits: 3})
	rooms.Put(&room.Room{ID: "r-other", FacilityID: "f2", RoomNumber: "1", Type: room.TypeFamily, Capacity: 4, NightlyPrice: 800, TotalUnits: 2})

	roomSvc := room.NewService(rooms, facility.NewService(facilities), nil, 0)
	repo := NewMemoryRepository()

	return fixture{svc: NewService(repo, roomSvc), repo: repo, rooms: rooms}
}

func createReq(roomID, in, out string, guests int) CreateRequest {
	return CreateRequest{
		RoomID:       roomID,
		FacilityID:   "f1",
		GuestName:    "Asha Shah",
		GuestContact: "+91 98200 00000",
		CheckIn:      date(in),
		CheckOut:     date(out),
		GuestCount:   guests,
	}
}

func roomIDs(rooms []*room.Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut string
		want                 bool
	}{
		{"inside", "2024-06-02", "2024-06-03", "2024-06-01", "2024-06-05", true},
		{"straddles start", "2024-05-30", "2024-06-02", "2024-06-01", "2024-06-05", true},
		{"straddles end", "2024-06-03", "2024-06-06", "2024-06-01", "2024-06-05", true},
		{"identical", "2024-06-01", "2024-06-05", "2024-06-01", "2024-06-05", true},
		{"checkout on checkin", "2024-05-28", "2024-06-01", "2024-06-01", "2024-06-05", false},
		{"checkin on checkout", "2024-06-05", "2024-06-08", "2024-06-01", "2024-06-05", false},
		{"disjoint", "2024-07-01", "2024-07-03", "2024-06-01", "2024-06-05", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aIn), date(tt.aOut), date(tt.bIn), date(tt.bOut))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, Overlaps(date(tt.bIn), date(tt.bOut), date(tt.aIn), date(tt.aOut)), "symmetric")
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:    true,
		{StatusPending, StatusCancelled}:    true,
		{StatusConfirmed, StatusCheckedIn}:  true,
		{StatusConfirmed, StatusCancelled}:  true,
		{StatusCheckedIn, StatusCheckedOut}: true,
		{StatusCheckedIn, StatusCancelled}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, StatusCheckedOut.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, Status("archived").Valid())
}

func TestFindAvailableRooms_HalfOpenBoundary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, createReq("r-double", "2024-06-01", "2024-06-05", 2))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
	require.NoError(t, err)

	rooms, err := f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
		FacilityID: "f1", CheckIn: date("2024-06-03"), CheckOut: date("2024-06-06"), GuestCount: 1,
	})
	require.NoError(t, err)
	assert.NotContains(t, roomIDs(rooms), "r-double")

	rooms, err = f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
		FacilityID: "f1", CheckIn: date("2024-06-05"), CheckOut: date("2024-06-08"), GuestCount: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, roomIDs(rooms), "r-double")

	// Cancelling frees the unit again.
	_, err = f.svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	rooms, err = f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
		FacilityID: "f1", CheckIn: date("2024-06-03"), CheckOut: date("2024-06-06"), GuestCount: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, roomIDs(rooms), "r-double")
}

func TestFindAvailableRooms_FiltersAndOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("capacity filter keeps inventory order", func(t *testing.T) {
		rooms, err := f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
			FacilityID: "f1", CheckIn: date("2024-06-01"), CheckOut: date("2024-06-02"), GuestCount: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"r-double", "r-dorm"}, roomIDs(rooms))
	})

	t.Run("multi-unit room stays available until every unit is taken", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := f.svc.Create(ctx, createReq("r-dorm", "2024-08-01", "2024-08-03", 4))
			require.NoError(t, err)
		}
		q := AvailabilityQuery{FacilityID: "f1", CheckIn: date("2024-08-02"), CheckOut: date("2024-08-04"), GuestCount: 3}

		rooms, err := f.svc.FindAvailableRooms(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, []string{"r-dorm"}, roomIDs(rooms))

		_, err = f.svc.Create(ctx, createReq("r-dorm", "2024-08-01", "2024-08-03", 4))
		require.NoError(t, err)

		rooms, err = f.svc.FindAvailableRooms(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, rooms)
		assert.NotNil(t, rooms)
	})

	t.Run("unknown facility", func(t *testing.T) {
		_, err := f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
			FacilityID: "nope", CheckIn: date("2024-06-01"), CheckOut: date("2024-06-02"), GuestCount: 1,
		})
		assert.ErrorIs(t, err, facility.ErrNotFound)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
			FacilityID: "f1", CheckIn: date("2024-06-02"), CheckOut: date("2024-06-02"), GuestCount: 1,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		_, err = f.svc.FindAvailableRooms(ctx, AvailabilityQuery{
			FacilityID: "f1", CheckIn: date("2024-06-01"), CheckOut: date("2024-06-02"), GuestCount: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidGuestCount)
	})
}

func TestFindAvailableRooms_RepeatableWithoutWrites(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, createReq("r-dorm", "2024-11-01", "2024-11-04", 2))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, createReq("r-single", "2024-11-02", "2024-11-03", 1))
	require.NoError(t, err)

	q := AvailabilityQuery{FacilityID: "f1", CheckIn: date("2024-11-02"), CheckOut: date("2024-11-05"), GuestCount: 1}

	first, err := f.svc.FindAvailableRooms(ctx, q)
	require.NoError(t, err)
	second, err := f.svc.FindAvailableRooms(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"r-double", "r-dorm"}, roomIDs(second))
}

func TestCreate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("prices the stay and starts pending", func(t *testing.T) {
		b, err := f.svc.Create(ctx, createReq("r-double", "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, int64(1500), b.TotalPrice)
		assert.Equal(t, "f1", b.FacilityID)

		stored, err := f.svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, stored.ID)
		assert.Equal(t, int64(1500), stored.TotalPrice)
	})

	t.Run("truncates times to dates", func(t *testing.T) {
		req := createReq("r-single", "2024-09-01", "2024-09-02", 1)
		req.CheckIn = req.CheckIn.Add(14 * time.Hour)
		req.CheckOut = req.CheckOut.Add(10 * time.Hour)

		b, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, date("2024-09-01"), b.CheckIn)
		assert.Equal(t, date("2024-09-02"), b.CheckOut)
		assert.Equal(t, int64(300), b.TotalPrice)
	})

	tests := []struct {
		name string
		req  CreateRequest
		want error
		kind apperror.Kind
	}{
		{"over capacity", createReq("r-double", "2024-06-10", "2024-06-12", 3), ErrExceedsCapacity, apperror.KindValidation},
		{"zero guests", createReq("r-double", "2024-06-10", "2024-06-12", 0), ErrInvalidGuestCount, apperror.KindValidation},
		{"same day", createReq("r-double", "2024-06-10", "2024-06-10", 1), ErrInvalidDateRange, apperror.KindValidation},
		{"inverted", createReq("r-double", "2024-06-12", "2024-06-10", 1), ErrInvalidDateRange, apperror.KindValidation},
		{"unknown room", createReq("r-missing", "2024-06-10", "2024-06-12", 1), room.ErrNotFound, apperror.KindNotFound},
		{"room of another facility", createReq("r-other", "2024-06-10", "2024-06-12", 1), ErrRoomFacilityMismatch, apperror.KindValidation},
		{"missing guest name", func() CreateRequest {
			r := createReq("r-double", "2024-06-10", "2024-06-12", 1)
			r.GuestName = "  "
			return r
		}(), ErrMissingFields, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	t.Run("fully booked", func(t *testing.T) {
		_, err := f.svc.Create(ctx, createReq("r-single", "2024-10-01", "2024-10-05", 1))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, createReq("r-single", "2024-10-04", "2024-10-06", 1))
		assert.ErrorIs(t, err, ErrFullyBooked)
		assert.Equal(t, apperror.KindCapacityExceeded, apperror.KindOf(err))

		// Back-to-back stays share no night.
		_, err = f.svc.Create(ctx, createReq("r-single", "2024-10-05", "2024-10-06", 1))
		assert.NoError(t, err)
	})
}

func TestCreate_ConcurrentRequestsNeverOverbook(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(ctx, createReq("r-dorm", "2024-12-01", "2024-12-03", 1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperror.KindOf(err) == apperror.KindCapacityExceeded:
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, attempts-3, full)

	counts, err := f.repo.OverlapCounts(ctx, []string{"r-dorm"}, date("2024-12-01"), date("2024-12-03"))
	require.NoError(t, err)
	assert.Equal(t, 3, counts["r-dorm"])
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	newBooking := func(t *testing.T, in, out string) *Booking {
		t.Helper()
		b, err := f.svc.Create(ctx, createReq("r-dorm", in, out, 1))
		require.NoError(t, err)
		return b
	}

	t.Run("walks the full lifecycle", func(t *testing.T) {
		b := newBooking(t, "2024-06-01", "2024-06-02")
		for _, next := range []Status{StatusConfirmed, StatusCheckedIn, StatusCheckedOut} {
			got, err := f.svc.UpdateStatus(ctx, b.ID, next)
			require.NoError(t, err)
			assert.Equal(t, next, got.Status)
		}

		_, err := f.svc.Cancel(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
	})

	t.Run("cannot skip steps", func(t *testing.T) {
		b := newBooking(t, "2024-06-03", "2024-06-04")
		_, err := f.svc.UpdateStatus(ctx, b.ID, StatusCheckedOut)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		stored, err := f.svc.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, stored.Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := newBooking(t, "2024-06-05", "2024-06-06")
		got, err := f.svc.Cancel(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)

		_, err = f.svc.Cancel(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = f.svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		b := newBooking(t, "2024-06-07", "2024-06-08")
		_, err := f.svc.UpdateStatus(ctx, b.ID, Status("archived"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := f.svc.UpdateStatus(ctx, "missing", StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuote(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	q, err := f.svc.Quote(ctx, "r-double", date("2024-06-01"), date("2024-06-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, int64(500), q.NightlyPrice)
	assert.Equal(t, int64(1500), q.Total)

	_, err = f.svc.Quote(ctx, "r-missing", date("2024-06-01"), date("2024-06-04"))
	assert.ErrorIs(t, err, room.ErrNotFound)

	_, err = f.svc.Quote(ctx, "r-double", date("2024-06-04"), date("2024-06-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.repo.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	first, err := f.svc.Create(ctx, createReq("r-dorm", "2024-06-01", "2024-06-02", 1))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, createReq("r-double", "2024-06-01", "2024-06-02", 1))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	all, total, err := f.svc.List(ctx, Filter{FacilityID: "f1"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	cancelled, total, err := f.svc.List(ctx, Filter{Status: StatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first.ID, cancelled[0].ID)

	page, total, err := f.svc.List(ctx, Filter{Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)

	empty, _, err := f.svc.List(ctx, Filter{RoomID: "r-single"})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	beyond, total, err := f.svc.List(ctx, Filter{Page: math.MaxInt, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, beyond)

	_, _, err = f.svc.List(ctx, Filter{Status: Status("archived")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
