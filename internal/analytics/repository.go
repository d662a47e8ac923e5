package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetDashboardAnalytics() (*DashboardAnalytics, error)
	GetOverviewMetrics() (*OverviewMetrics, error)
	GetMoviesByLanguage() ([]LanguageBreakdown, error)
	GetTopMovies(limit int) ([]MoviePerformance, error)
	GetDailyBookingStats(days int) ([]DailyBookingStats, error)
	GetRecentBookings(limit int) ([]RecentBookingItem, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDashboardAnalytics() (*DashboardAnalytics, error) {
	overview, err := r.GetOverviewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get overview metrics: %w", err)
	}

	byLanguage, err := r.GetMoviesByLanguage()
	if err != nil {
		return nil, fmt.Errorf("failed to get language breakdown: %w", err)
	}

	topMovies, err := r.GetTopMovies(10)
	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	dailyStats, err := r.GetDailyBookingStats(30)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	recent, err := r.GetRecentBookings(20)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	return &DashboardAnalytics{
		Overview:         *overview,
		MoviesByLanguage: byLanguage,
		TopMovies:        topMovies,
		DailyBookings:    dailyStats,
		RecentBookings:   recent,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

func (r *repository) GetOverviewMetrics() (*OverviewMetrics, error) {
	var metrics OverviewMetrics

	var totalUsers int64
	if err := r.db.Table("users").Count(&totalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	metrics.TotalUsers = int(totalUsers)

	var totalMovies int64
	if err := r.db.Table("movies").Count(&totalMovies).Error; err != nil {
		return nil, fmt.Errorf("failed to count movies: %w", err)
	}
	metrics.TotalMovies = int(totalMovies)

	var totalShowtimes int64
	if err := r.db.Table("showtimes").Count(&totalShowtimes).Error; err != nil {
		return nil, fmt.Errorf("failed to count showtimes: %w", err)
	}
	metrics.TotalShowtimes = int(totalShowtimes)

	var totalBookings int64
	if err := r.db.Table("bookings").Count(&totalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	metrics.TotalBookings = int(totalBookings)

	var ticketsSold *int64
	if err := r.db.Table("bookings").
		Select("SUM(ticket_count)").
		Scan(&ticketsSold).Error; err != nil {
		return nil, fmt.Errorf("failed to sum tickets sold: %w", err)
	}
	if ticketsSold != nil {
		metrics.TicketsSold = int(*ticketsSold)
	}

	// Occupancy is tickets sold over total capacity across all showtimes.
	var totalCapacity *int64
	if err := r.db.Table("showtimes").
		Select("SUM(total_seats)").
		Scan(&totalCapacity).Error; err != nil {
		return nil, fmt.Errorf("failed to sum seat capacity: %w", err)
	}
	if totalCapacity != nil && *totalCapacity > 0 {
		metrics.AverageOccupancy = float64(metrics.TicketsSold) / float64(*totalCapacity) * 100
	}

	return &metrics, nil
}

func (r *repository) GetMoviesByLanguage() ([]LanguageBreakdown, error) {
	var breakdown []LanguageBreakdown
	err := r.db.Table("movies").
		Select("language, COUNT(*) AS movie_count").
		Group("language").
		Order("movie_count DESC").
		Scan(&breakdown).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group movies by language: %w", err)
	}
	return breakdown, nil
}

func (r *repository) GetTopMovies(limit int) ([]MoviePerformance, error) {
	var performance []MoviePerformance
	err := r.db.Table("movies").
		Select("movies.id AS movie_id, movies.title, COALESCE(SUM(bookings.ticket_count), 0) AS tickets_sold, COUNT(bookings.id) AS bookings").
		Joins("LEFT JOIN showtimes ON showtimes.movie_id = movies.id").
		Joins("LEFT JOIN bookings ON bookings.showtime_id = showtimes.id").
		Group("movies.id, movies.title").
		Order("tickets_sold DESC").
		Limit(limit).
		Scan(&performance).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank movies: %w", err)
	}
	return performance, nil
}

// GetDailyBookingStats buckets bookings per calendar day in Go rather than
// SQL date functions, which differ between backends.
func (r *repository) GetDailyBookingStats(days int) ([]DailyBookingStats, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	type bookingRow struct {
		CreatedAt   time.Time
		TicketCount int
	}
	var rows []bookingRow
	err := r.db.Table("bookings").
		Select("created_at, ticket_count").
		Where("created_at >= ?", cutoff).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load booking dates: %w", err)
	}

	buckets := make(map[string]*DailyBookingStats)
	order := make([]string, 0)
	for _, row := range rows {
		day := row.CreatedAt.UTC().Format("2006-01-02")
		stat, ok := buckets[day]
		if !ok {
			stat = &DailyBookingStats{Date: day}
			buckets[day] = stat
			order = append(order, day)
		}
		stat.Bookings++
		stat.TicketsSold += row.TicketCount
	}

	stats := make([]DailyBookingStats, 0, len(order))
	for _, day := range order {
		stats = append(stats, *buckets[day])
	}
	return stats, nil
}

func (r *repository) GetRecentBookings(limit int) ([]RecentBookingItem, error) {
	var items []RecentBookingItem
	err := r.db.Table("bookings").
		Select("bookings.id AS booking_id, bookings.booking_ref, users.username, movies.title AS movie_title, bookings.ticket_count, bookings.created_at AS booked_at").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN showtimes ON showtimes.id = bookings.showtime_id").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Order("bookings.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent bookings: %w", err)
	}
	return items, nil
}
