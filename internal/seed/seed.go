// Package seed loads facility and room definitions from a YAML file into the
// in-memory repositories.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
)

type File struct {
	Facilities []FacilityEntry `yaml:"facilities"`
}

type FacilityEntry struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	City        string      `yaml:"city"`
	State       string      `yaml:"state"`
	Address     string      `yaml:"address"`
	Phone       string      `yaml:"phone"`
	Amenities   []string    `yaml:"amenities"`
	Rooms       []RoomEntry `yaml:"rooms"`
}

type RoomEntry struct {
	ID           string   `yaml:"id"`
	RoomNumber   string   `yaml:"room_number"`
	Type         string   `yaml:"type"`
	Description  string   `yaml:"description"`
	Capacity     int      `yaml:"capacity"`
	NightlyPrice int64    `yaml:"nightly_price"`
	TotalUnits   int      `yaml:"total_units"`
	Amenities    []string `yaml:"amenities"`
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates seed YAML.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	facilityIDs := make(map[string]bool)
	roomIDs := make(map[string]bool)

	for i, fe := range f.Facilities {
		if fe.ID == "" || fe.Name == "" {
			return fmt.Errorf("facility #%d: id and name are required", i+1)
		}
		if facilityIDs[fe.ID] {
			return fmt.Errorf("facility %q: duplicate id", fe.ID)
		}
		facilityIDs[fe.ID] = true

		for _, re := range fe.Rooms {
			if re.ID == "" {
				return fmt.Errorf("facility %q: room without id", fe.ID)
			}
			if roomIDs[re.ID] {
				return fmt.Errorf("room %q: duplicate id", re.ID)
			}
			roomIDs[re.ID] = true

			switch {
			case re.Capacity < 1:
				return fmt.Errorf("room %q: capacity must be at least 1", re.ID)
			case re.TotalUnits < 1:
				return fmt.Errorf("room %q: total_units must be at least 1", re.ID)
			case re.NightlyPrice < 1:
				return fmt.Errorf("room %q: nightly_price must be at least 1", re.ID)
			case !room.Type(re.Type).Valid():
				return fmt.Errorf("room %q: unknown type %q", re.ID, re.Type)
			}
		}
	}
	return nil
}

// Apply stores every facility and room of f.
func Apply(f *File, facilities *facility.MemoryRepository, rooms *room.MemoryRepository) {
	now := time.Now()
	for _, fe := range f.Facilities {
		facilities.Put(&facility.Facility{
			ID:          fe.ID,
			Name:        fe.Name,
			Description: fe.Description,
			City:        fe.City,
			State:       fe.State,
			Address:     fe.Address,
			Phone:       fe.Phone,
			Amenities:   fe.Amenities,
			CreatedAt:   now,
		})
		for _, re := range fe.Rooms {
			rooms.Put(&room.Room{
				ID:           re.ID,
				FacilityID:   fe.ID,
				RoomNumber:   re.RoomNumber,
				Type:         room.Type(re.Type),
				Description:  re.Description,
				Capacity:     re.Capacity,
				NightlyPrice: re.NightlyPrice,
				TotalUnits:   re.TotalUnits,
				Amenities:    re.Amenities,
			})
		}
	}
}
