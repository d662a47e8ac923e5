// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinebook/internal/analytics"
	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     bookings.TicketNotifier

	// Shared across feature setups
	movieRepo    movies.Repository
	showtimeRepo showtimes.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}

	if db.Redis != nil {
		r.cacheService = cache.NewService(db.GetRedisClient())
	}

	return r
}

// SetNotifier injects the ticket event publisher used after bookings commit
func (r *Router) SetNotifier(notifier bookings.TicketNotifier) {
	r.notifier = notifier
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupMovieRoutes(api)
		r.setupShowtimeRoutes(api)
		r.setupBookingRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
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

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config, logger.GetDefault())
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupMovieRoutes configures the movie catalog routes
func (r *Router) setupMovieRoutes(rg *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	movieService := movies.NewService(movieRepo)

	if r.cacheService != nil {
		movieService.SetCacheService(r.cacheService, r.config.Redis.CatalogTTL)
	}

	movieController := movies.NewController(movieService)

	// Keep the repo around for showtime and booking wiring
	r.movieRepo = movieRepo

	movies.SetupMovieRoutes(rg, movieController)
}

// setupShowtimeRoutes configures the showtime catalog routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	showtimeRepo := showtimes.NewRepository(r.db.GetPostgreSQL())
	showtimeService := showtimes.NewService(showtimeRepo, r.movieRepo)

	if r.cacheService != nil {
		showtimeService.SetCacheService(r.cacheService, r.config.Redis.CatalogTTL)
	}

	showtimeController := showtimes.NewController(showtimeService)

	r.showtimeRepo = showtimeRepo

	showtimes.SetupShowtimeRoutes(rg, showtimeController)
}

// setupBookingRoutes configures seat maps and the booking transaction routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.showtimeRepo, logger.GetDefault())

	if r.cacheService != nil {
		bookingService.SetCacheService(r.cacheService, r.config.Redis.SeatMapTTL)
	}
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}

	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupAnalyticsRoutes configures the admin analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, logger.GetDefault())

	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService, r.config.Redis.AnalyticsTTL)
	}

	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
