package analytics

import (
	"time"

	"github.com/google/uuid"
)

// DashboardAnalytics is the full admin dashboard payload.
type DashboardAnalytics struct {
	Overview         OverviewMetrics    `json:"overview"`
	MoviesByLanguage []LanguageBreakdown `json:"movies_by_language"`
	TopMovies        []MoviePerformance  `json:"top_movies"`
	DailyBookings    []DailyBookingStats `json:"daily_bookings"`
	RecentBookings   []RecentBookingItem `json:"recent_bookings"`
	GeneratedAt      time.Time           `json:"generated_at"`
}

// OverviewMetrics holds the headline counters.
type OverviewMetrics struct {
	TotalUsers       int     `json:"total_users"`
	TotalMovies      int     `json:"total_movies"`
	TotalShowtimes   int     `json:"total_showtimes"`
	TotalBookings    int     `json:"total_bookings"`
	TicketsSold      int     `json:"tickets_sold"`
	AverageOccupancy float64 `json:"average_occupancy_percent"`
}

// LanguageBreakdown counts movies per language.
type LanguageBreakdown struct {
	Language   string `json:"language"`
	MovieCount int    `json:"movie_count"`
}

// MoviePerformance ranks a movie by tickets sold across its showtimes.
type MoviePerformance struct {
	MovieID     uuid.UUID `json:"movie_id"`
	Title       string    `json:"title"`
	TicketsSold int       `json:"tickets_sold"`
	Bookings    int       `json:"bookings"`
}

// DailyBookingStats is one day of booking volume.
type DailyBookingStats struct {
	Date        string `json:"date"`
	Bookings    int    `json:"bookings"`
	TicketsSold int    `json:"tickets_sold"`
}

// RecentBookingItem is one row of the latest-bookings feed.
type RecentBookingItem struct {
	BookingID   uuid.UUID `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	Username    string    `json:"username"`
	MovieTitle  string    `json:"movie_title"`
	TicketCount int       `json:"ticket_count"`
	BookedAt    time.Time `json:"booked_at"`
}
