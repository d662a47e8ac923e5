package cache

import "fmt"

// Cache key layout, namespaced under cinebook:
const (
	KeyMovieList          = "cinebook:movies:list"
	KeyAnalyticsDashboard = "cinebook:analytics:dashboard"
)

func BuildShowtimeListKey(movieID string) string {
	return fmt.Sprintf("cinebook:showtimes:movie:%s", movieID)
}

func BuildSeatMapKey(showtimeID string) string {
	return fmt.Sprintf("cinebook:seatmap:%s", showtimeID)
}
