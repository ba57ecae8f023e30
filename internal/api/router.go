package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/dharamshala-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/dharamshala-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/facility"
	facilityHttp "github.com/nekogravitycat/dharamshala-booking-backend/internal/facility/http"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/logger"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/rating"
	ratingHttp "github.com/nekogravitycat/dharamshala-booking-backend/internal/rating/http"
	"github.com/nekogravitycat/dharamshala-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/dharamshala-booking-backend/internal/room/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	FacilityService facility.Service
	RoomService     room.Service
	BookingService  booking.Service
	RatingService   rating.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Recovery) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: Logs request information through zerolog.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.RequestLogger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		config.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.BookingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	ratingHandler := ratingHttp.NewHandler(cfg.RatingService, cfg.FacilityService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		facilityHttp.RegisterRoutes(v1, facilityHandler)
		roomHttp.RegisterRoutes(v1, roomHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
		ratingHttp.RegisterRoutes(v1, ratingHandler)
	}

	return r
}

// splitOrigins parses a comma-separated origin list, dropping blanks.
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
