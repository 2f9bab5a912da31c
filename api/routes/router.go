// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"hallbook/internal/booking"
	"hallbook/internal/events"
	"hallbook/internal/notifications"
	"hallbook/internal/seats"
	"hallbook/internal/shared/config"
	"hallbook/internal/shared/database"
	"hallbook/internal/stats"
	"hallbook/internal/tickets"
	"hallbook/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	producer     notifications.Producer
	cacheService cache.Service

	// Cross-package services, kept for dependency injection
	seatService    seats.Service
	eventService   events.Service
	bookingService booking.Service
	statsService   stats.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		producer:     producer,
		cacheService: cache.NewService(db.GetRedisClient()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Visit tracking wraps everything registered below it
	statsRepo := stats.NewRepository(r.db.GetPostgreSQL())
	statsService := stats.NewService(statsRepo)
	statsService.SetCacheService(r.cacheService)
	r.statsService = statsService
	engine.Use(stats.TrackVisits(statsService))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Seat routes first: events and booking depend on the seat service
		r.setupSeatRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
		r.setupTicketRoutes(api)
		r.setupStatsRoutes(api)
	}
}

// BookingService exposes the booking service so main can start the
// reservation sweeper
func (r *Router) BookingService() booking.Service {
	return r.bookingService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "hallbook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "hallbook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupSeatRoutes configures seat map routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo)
	seatService.SetCacheService(r.cacheService)
	seatController := seats.NewController(seatService)

	r.seatService = seatService

	seats.SetupSeatRoutes(rg, seatController)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	eventService.SetCacheService(r.cacheService)

	// Inject seat service so new events get their default seat map
	if r.seatService != nil {
		eventService.SetSeatService(r.seatService)
	}

	r.eventService = eventService
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupBookingRoutes configures the booking and payment flow routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := booking.NewRepository(r.db.GetPostgreSQL())
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())

	bookingService := booking.NewService(bookingRepo, seatRepo, eventRepo, r.producer, r.config.Booking.HoldTTL)
	bookingService.SetCacheService(r.cacheService)
	bookingService.SetPaymentURL(r.config.PaymentURL)

	r.bookingService = bookingService
	bookingController := booking.NewController(bookingService)

	booking.SetupBookingRoutes(rg, bookingController)
}

// setupTicketRoutes configures ticket verification and admin booking routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo, r.producer)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

// setupStatsRoutes configures the admin dashboard routes
func (r *Router) setupStatsRoutes(rg *gin.RouterGroup) {
	statsController := stats.NewController(r.statsService)

	stats.SetupStatsRoutes(rg, statsController)
}
