package bookings

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Public route - seat map for a showtime
	router.GET("/showtimes/:showtimeId/seats", controller.GetSeatMap) // GET /api/v1/showtimes/:showtimeId/seats

	// Authenticated routes - booking and history
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)       // POST /api/v1/bookings
		bookings.GET("", controller.GetUserBookings)      // GET /api/v1/bookings
		bookings.GET("/:bookingId", controller.GetBooking) // GET /api/v1/bookings/:bookingId
	}
}
