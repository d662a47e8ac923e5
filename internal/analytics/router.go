package analytics

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller) {
	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/dashboard", controller.GetDashboardAnalytics)
	admin.GET("/overview", controller.GetOverviewMetrics)

	movies := admin.Group("/movies")
	{
		movies.GET("/languages", controller.GetMoviesByLanguage) // Movies grouped by language
		movies.GET("/top", controller.GetTopMovies)              // Top movies by tickets sold (?limit=10)
	}

	bookings := admin.Group("/bookings")
	{
		bookings.GET("/daily", controller.GetDailyBookingStats) // Daily booking volume (?days=30)
	}
}
