package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/api"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/booking"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/cache"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/rating"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/seed"
)

// Config holds the dependencies and settings required to start the application.
// A nil DBPool selects the in-memory store, populated from Seed when given.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Seed         *seed.File
	Cache        cache.Cache
	CacheTTL     time.Duration
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router          *gin.Engine
	FacilityService facility.Service
	RoomService     room.Service
	BookingService  booking.Service
	RatingService   rating.Service
}

type repositories struct {
	facilities facility.Repository
	rooms      room.Repository
	bookings   booking.Repository
	ratings    rating.Repository
}

func newPgxRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		facilities: facility.NewPgxRepository(pool),
		rooms:      room.NewPgxRepository(pool),
		bookings:   booking.NewPgxRepository(pool),
		ratings:    rating.NewPgxRepository(pool),
	}
}

func newMemoryRepositories(f *seed.File) repositories {
	facilities := facility.NewMemoryRepository()
	rooms := room.NewMemoryRepository()
	if f != nil {
		seed.Apply(f, facilities, rooms)
	}
	return repositories{
		facilities: facilities,
		rooms:      rooms,
		bookings:   booking.NewMemoryRepository(),
		ratings:    rating.NewMemoryRepository(),
	}
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	var repos repositories
	if cfg.DBPool != nil {
		repos = newPgxRepositories(cfg.DBPool)
	} else {
		repos = newMemoryRepositories(cfg.Seed)
	}

	// Facility Module
	facilityService := facility.NewService(repos.facilities)

	// Room Module
	roomService := room.NewService(repos.rooms, facilityService, cfg.Cache, cfg.CacheTTL)

	// Booking Module
	bookingService := booking.NewService(repos.bookings, roomService)

	// Rating Module
	ratingService := rating.NewService(repos.ratings, bookingService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		FacilityService: facilityService,
		RoomService:     roomService,
		BookingService:  bookingService,
		RatingService:   ratingService,
	})

	return &Container{
		Router:          router,
		FacilityService: facilityService,
		RoomService:     roomService,
		BookingService:  bookingService,
		RatingService:   ratingService,
	}
}
