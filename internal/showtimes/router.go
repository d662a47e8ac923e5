package showtimes

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing showtimes for a movie
	router.GET("/movies/:movieId/showtimes", controller.ListShowtimes) // GET /api/v1/movies/:movieId/showtimes
	router.GET("/showtimes/:showtimeId", controller.GetShowtime)       // GET /api/v1/showtimes/:showtimeId

	// Admin routes - showtime management
	adminShowtimes := router.Group("/admin/showtimes")
	adminShowtimes.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminShowtimes.POST("", controller.CreateShowtime)               // POST /api/v1/admin/showtimes
		adminShowtimes.DELETE("/:showtimeId", controller.DeleteShowtime) // DELETE /api/v1/admin/showtimes/:showtimeId
	}
}
