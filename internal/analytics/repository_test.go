package analytics

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&showtimes.Showtime{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// seedFixture builds two movies with one showtime each and books seats on
// the first one.
func seedFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	alice := &users.User{Username: "alice", Email: "a@example.com", Password: "hash", Role: users.RoleUser}
	bob := &users.User{Username: "bob", Email: "b@example.com", Password: "hash", Role: users.RoleUser}
	for _, u := range []*users.User{alice, bob} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	hit := &movies.Movie{Title: "Big Hit", Genre: "Action", Language: "English", DurationMin: 120, Rating: 8.0, ReleaseYear: 2026}
	flop := &movies.Movie{Title: "Quiet Flop", Genre: "Drama", Language: "Hindi", DurationMin: 110, Rating: 6.0, ReleaseYear: 2025}
	for _, m := range []*movies.Movie{hit, flop} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("failed to seed movie: %v", err)
		}
	}

	hitShowtime := &showtimes.Showtime{MovieID: hit.ID, ShowDate: "2026-09-02", ShowTime: "18:00", TotalSeats: 100, AvailableSeats: 100}
	flopShowtime := &showtimes.Showtime{MovieID: flop.ID, ShowDate: "2026-09-02", ShowTime: "21:15", TotalSeats: 100, AvailableSeats: 100}
	for _, s := range []*showtimes.Showtime{hitShowtime, flopShowtime} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to seed showtime: %v", err)
		}
	}

	bookingRepo := bookings.NewRepository(db)
	first := &bookings.Booking{UserID: alice.ID, ShowtimeID: hitShowtime.ID, BookingRef: "CBK-20260901-ANA001"}
	if err := bookingRepo.CreateBookingWithSeats(ctx, first, []string{"A1", "A2", "A3"}); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	second := &bookings.Booking{UserID: bob.ID, ShowtimeID: hitShowtime.ID, BookingRef: "CBK-20260901-ANA002"}
	if err := bookingRepo.CreateBookingWithSeats(ctx, second, []string{"B1"}); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
}

func TestRepository_GetOverviewMetrics(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	repo := NewRepository(db)

	overview, err := repo.GetOverviewMetrics()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if overview.TotalUsers != 2 {
		t.Fatalf("expected 2 users, got %d", overview.TotalUsers)
	}
	if overview.TotalMovies != 2 {
		t.Fatalf("expected 2 movies, got %d", overview.TotalMovies)
	}
	if overview.TotalBookings != 2 {
		t.Fatalf("expected 2 bookings, got %d", overview.TotalBookings)
	}
	if overview.TicketsSold != 4 {
		t.Fatalf("expected 4 tickets sold, got %d", overview.TicketsSold)
	}
	// 4 tickets across 200 seats of capacity.
	if overview.AverageOccupancy != 2.0 {
		t.Fatalf("expected 2.0 percent occupancy, got %v", overview.AverageOccupancy)
	}
}

func TestRepository_GetOverviewMetrics_Empty(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	overview, err := repo.GetOverviewMetrics()
	if err != nil {
		t.Fatalf("expected no error on empty database, got %v", err)
	}
	if overview.TicketsSold != 0 || overview.AverageOccupancy != 0 {
		t.Fatalf("expected zeroed metrics, got %+v", overview)
	}
}

func TestRepository_GetMoviesByLanguage(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	repo := NewRepository(db)

	breakdown, err := repo.GetMoviesByLanguage()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	counts := make(map[string]int)
	for _, entry := range breakdown {
		counts[entry.Language] = entry.MovieCount
	}
	if counts["English"] != 1 || counts["Hindi"] != 1 {
		t.Fatalf("unexpected language counts: %v", counts)
	}
}

func TestRepository_GetTopMovies(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	repo := NewRepository(db)

	top, err := repo.GetTopMovies(10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(top) != 2 {
		t.Fatalf("expected 2 ranked movies, got %d", len(top))
	}
	if top[0].Title != "Big Hit" || top[0].TicketsSold != 4 {
		t.Fatalf("expected Big Hit with 4 tickets first, got %q with %d", top[0].Title, top[0].TicketsSold)
	}
	if top[1].TicketsSold != 0 {
		t.Fatalf("expected unbooked movie to rank with 0 tickets, got %d", top[1].TicketsSold)
	}
}

func TestRepository_GetDailyBookingStats(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	repo := NewRepository(db)

	stats, err := repo.GetDailyBookingStats(30)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Both bookings were created just now, so they land in one bucket.
	if len(stats) != 1 {
		t.Fatalf("expected 1 daily bucket, got %d", len(stats))
	}
	if stats[0].Bookings != 2 || stats[0].TicketsSold != 4 {
		t.Fatalf("expected 2 bookings and 4 tickets in bucket, got %+v", stats[0])
	}
}

func TestRepository_GetRecentBookings(t *testing.T) {
	db := openTestDB(t)
	seedFixture(t, db)
	repo := NewRepository(db)

	recent, err := repo.GetRecentBookings(10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 recent bookings, got %d", len(recent))
	}
	for _, item := range recent {
		if item.MovieTitle != "Big Hit" {
			t.Fatalf("expected joined movie title, got %q", item.MovieTitle)
		}
		if item.Username == "" {
			t.Fatal("expected joined username")
		}
	}
}
