package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

func TestLoadAndApply(t *testing.T) {
	f, err := Load("testdata/seed.yaml")
	require.NoError(t, err)
	require.Len(t, f.Facilities, 2)

	facilities := facility.NewMemoryRepository()
	rooms := room.NewMemoryRepository()
	Apply(f, facilities, rooms)

	ctx := context.Background()

	fac, err := facilities.GetByID(ctx, "palitana-mahavir")
	require.NoError(t, err)
	assert.Equal(t, "Palitana", fac.City)
	assert.Equal(t, []string{"Bhojanshala", "Upashraya", "Parking"}, fac.Amenities)

	list, err := rooms.ListByFacility(ctx, "palitana-mahavir")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "101", list[0].RoomNumber)
	assert.Equal(t, room.TypeDormitory, list[2].Type)
	assert.Equal(t, 3, list[2].TotalUnits)

	r, err := rooms.GetByID(ctx, "shikharji-parshwanath-401")
	require.NoError(t, err)
	assert.Equal(t, "shikharji-parshwanath", r.FacilityID)
	assert.Equal(t, int64(1200), r.NightlyPrice)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "facilities:\n  - id: a\n", "id and name are required"},
		{"duplicate facility", "facilities:\n  - {id: a, name: A}\n  - {id: a, name: B}\n", "duplicate id"},
		{"zero units", "facilities:\n  - id: a\n    name: A\n    rooms:\n      - {id: r, type: single, capacity: 2, nightly_price: 100, total_units: 0}\n", "total_units"},
		{"zero capacity", "facilities:\n  - id: a\n    name: A\n    rooms:\n      - {id: r, type: single, capacity: 0, nightly_price: 100, total_units: 1}\n", "capacity"},
		{"zero price", "facilities:\n  - id: a\n    name: A\n    rooms:\n      - {id: r, type: single, capacity: 1, nightly_price: 0, total_units: 1}\n", "nightly_price must be at least 1"},
		{"unknown type", "facilities:\n  - id: a\n    name: A\n    rooms:\n      - {id: r, type: penthouse, capacity: 1, nightly_price: 100, total_units: 1}\n", "unknown type"},
		{"bad yaml", "facilities: [", "decode seed file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
