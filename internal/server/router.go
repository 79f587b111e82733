package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinicbook/internal/config"
	"clinicbook/internal/domain"
	"clinicbook/internal/middleware"
	"clinicbook/internal/modules/access"
	"clinicbook/internal/modules/availability"
	"clinicbook/internal/modules/booking"
	"clinicbook/internal/modules/catalog"
	"clinicbook/internal/pkg/response"
	"clinicbook/internal/repository"
)

// Deps are the collaborators the HTTP surface is built from.
// Cache and Events are optional.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Tokens middleware.TokenValidator
	Cache  booking.SlotCache
	Events booking.EventPublisher
}

func NewRouter(d Deps) (*gin.Engine, error) {
	loc, err := d.Config.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	schedule, err := availability.NewSchedule(d.Config.Schedule.Open, d.Config.Schedule.Close, d.Config.Schedule.Step)
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	engine := availability.NewEngine(schedule, loc)

	venueRepo := repository.NewVenueRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)

	gate := access.NewGate(userRepo)

	bookingService := booking.NewService(bookingRepo, venueRepo, serviceRepo, engine, d.Log)
	if d.Cache != nil {
		bookingService.WithCache(d.Cache)
	}
	if d.Events != nil {
		bookingService.WithEvents(d.Events)
	}
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(venueRepo, serviceRepo, userRepo, d.Log)
	catalogHandler := catalog.NewHandler(catalogService)

	limiter := middleware.NewRateLimiter(d.Config.RateLimit.BookingsPerSecond, d.Config.RateLimit.Burst)

	r := gin.New()
	// Only configured proxies may set X-Forwarded-For; the booking limiter keys on ClientIP.
	if err := r.SetTrustedProxies(d.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestLogger(d.Log), middleware.Metrics())

	r.GET("/health", healthHandler(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		// client; anonymous callers reach the handlers and get UNAUTHENTICATED
		user := v1.Group("", middleware.IdentifyUser(d.Tokens))
		bookingHandler.RegisterRoutes(user, limiter.Limit())

		// admin area
		admin := v1.Group("/admin", middleware.JWTAuth(d.Tokens), middleware.AdminArea(gate))
		{
			catalogHandler.RegisterAdminRoutes(admin)

			super := admin.Group("", middleware.RequireRole(gate, domain.RoleSuperAdmin))
			catalogHandler.RegisterSuperAdminRoutes(super)

			venue := admin.Group("/venues/:id", middleware.VenueAdmin(gate, "id"))
			catalogHandler.RegisterVenueAdminRoutes(venue)
			bookingHandler.RegisterVenueAdminRoutes(venue)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found")
	})

	return r, nil
}

// NewHandler wraps the router with CORS.
func NewHandler(d Deps) (http.Handler, error) {
	r, err := NewRouter(d)
	if err != nil {
		return nil, err
	}
	return middleware.CORS(d.Config.CORSAllowedOrigins).Handler(r), nil
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
