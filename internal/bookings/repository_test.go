package bookings

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"cinebook/internal/movies"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
)

// openTestDB gives each test its own in-memory database with the full
// schema, including the unique (showtime_id, seat_label) index.
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
		&Booking{},
		&BookingSeat{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func seedShowtime(t *testing.T, db *gorm.DB, total int) *showtimes.Showtime {
	t.Helper()

	movie := &movies.Movie{
		Title:       "Test Feature",
		Genre:       "Drama",
		Language:    "English",
		DurationMin: 120,
		Rating:      7.5,
		ReleaseYear: 2026,
	}
	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("failed to seed movie: %v", err)
	}

	showtime := &showtimes.Showtime{
		MovieID:        movie.ID,
		ShowDate:       "2026-09-02",
		ShowTime:       "18:00",
		TotalSeats:     total,
		AvailableSeats: total,
	}
	if err := db.Create(showtime).Error; err != nil {
		t.Fatalf("failed to seed showtime: %v", err)
	}
	return showtime
}

func seedUser(t *testing.T, db *gorm.DB, username string) *users.User {
	t.Helper()

	user := &users.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
		Role:     users.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestRepository_CreateBookingWithSeats(t *testing.T) {
	t.Run("claims seats and decrements availability", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewRepository(db)
		showtime := seedShowtime(t, db, 100)
		user := seedUser(t, db, "alice")

		booking := &Booking{
			UserID:     user.ID,
			ShowtimeID: showtime.ID,
			BookingRef: "CBK-20260901-TEST01",
		}
		err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"A1", "A2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if booking.TicketCount != 2 {
			t.Fatalf("expected ticket count 2, got %d", booking.TicketCount)
		}

		var reloaded showtimes.Showtime
		if err := db.First(&reloaded, "id = ?", showtime.ID).Error; err != nil {
			t.Fatalf("failed to reload showtime: %v", err)
		}
		if reloaded.AvailableSeats != 98 {
			t.Fatalf("expected 98 available seats, got %d", reloaded.AvailableSeats)
		}

		occupied, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("failed to load occupied seats: %v", err)
		}
		if !reflect.DeepEqual(occupied, []string{"A1", "A2"}) {
			t.Fatalf("expected occupied [A1 A2], got %v", occupied)
		}
	})

	t.Run("rolls back fully on seat conflict", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewRepository(db)
		showtime := seedShowtime(t, db, 100)
		alice := seedUser(t, db, "alice")
		bob := seedUser(t, db, "bob")

		first := &Booking{UserID: alice.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-TEST02"}
		if err := repo.CreateBookingWithSeats(context.Background(), first, []string{"A1", "A2"}); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		second := &Booking{UserID: bob.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-TEST03"}
		err := repo.CreateBookingWithSeats(context.Background(), second, []string{"A2", "A3"})
		if !errors.Is(err, ErrSeatConflict) {
			t.Fatalf("expected ErrSeatConflict, got %v", err)
		}

		// A3 must not be claimed and the counter must not move.
		occupied, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("failed to load occupied seats: %v", err)
		}
		if !reflect.DeepEqual(occupied, []string{"A1", "A2"}) {
			t.Fatalf("expected occupied [A1 A2] after rollback, got %v", occupied)
		}

		var reloaded showtimes.Showtime
		if err := db.First(&reloaded, "id = ?", showtime.ID).Error; err != nil {
			t.Fatalf("failed to reload showtime: %v", err)
		}
		if reloaded.AvailableSeats != 98 {
			t.Fatalf("expected 98 available seats after rollback, got %d", reloaded.AvailableSeats)
		}

		var bookingCount int64
		if err := db.Model(&Booking{}).Count(&bookingCount).Error; err != nil {
			t.Fatalf("failed to count bookings: %v", err)
		}
		if bookingCount != 1 {
			t.Fatalf("expected 1 booking after rollback, got %d", bookingCount)
		}
	})

	t.Run("rejects requests beyond capacity", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewRepository(db)
		showtime := seedShowtime(t, db, 1)
		user := seedUser(t, db, "alice")

		booking := &Booking{UserID: user.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-TEST04"}
		err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"A1", "A2"})
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("expected ErrCapacityExceeded, got %v", err)
		}
	})

	t.Run("rejects unknown showtime", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewRepository(db)
		user := seedUser(t, db, "alice")

		booking := &Booking{UserID: user.ID, ShowtimeID: uuid.New(), BookingRef: "CBK-20260901-TEST05"}
		err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"A1"})
		if !errors.Is(err, showtimes.ErrShowtimeNotFound) {
			t.Fatalf("expected ErrShowtimeNotFound, got %v", err)
		}
	})

	t.Run("keeps ledger and counter consistent across sequential bookings", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewRepository(db)
		showtime := seedShowtime(t, db, 100)
		user := seedUser(t, db, "alice")

		rows := []string{"A", "B", "C", "D", "E"}
		for i, row := range rows {
			booking := &Booking{
				UserID:     user.ID,
				ShowtimeID: showtime.ID,
				BookingRef: "CBK-20260901-SEQ" + string(rune('0'+i)),
			}
			if err := repo.CreateBookingWithSeats(context.Background(), booking, []string{row + "1", row + "2", row + "3"}); err != nil {
				t.Fatalf("booking %d failed: %v", i, err)
			}
		}

		var seatCount int64
		if err := db.Model(&BookingSeat{}).Where("showtime_id = ?", showtime.ID).Count(&seatCount).Error; err != nil {
			t.Fatalf("failed to count seats: %v", err)
		}

		var reloaded showtimes.Showtime
		if err := db.First(&reloaded, "id = ?", showtime.ID).Error; err != nil {
			t.Fatalf("failed to reload showtime: %v", err)
		}

		if int(seatCount)+reloaded.AvailableSeats != reloaded.TotalSeats {
			t.Fatalf("ledger and counter disagree: %d seats + %d available != %d total",
				seatCount, reloaded.AvailableSeats, reloaded.TotalSeats)
		}
	})
}

func TestRepository_OccupiedSeats(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	showtime := seedShowtime(t, db, 100)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	booking := &Booking{UserID: alice.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-OCC001"}
	if err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"A1"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	t.Run("identical results across repeated reads", func(t *testing.T) {
		first, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		second, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical ledgers, got %v then %v", first, second)
		}
		if !reflect.DeepEqual(first, []string{"A1"}) {
			t.Fatalf("expected occupied [A1], got %v", first)
		}
	})

	t.Run("alternate spellings of a taken seat conflict", func(t *testing.T) {
		for _, label := range []string{"A01", "a01", " a1 "} {
			rival := &Booking{UserID: bob.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-OCC002"}
			err := repo.CreateBookingWithSeats(context.Background(), rival, []string{label})
			if !errors.Is(err, ErrSeatConflict) {
				t.Fatalf("expected ErrSeatConflict for %q, got %v", label, err)
			}
		}

		// The ledger must still hold one canonical entry for the seat.
		occupied, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(occupied, []string{"A1"}) {
			t.Fatalf("expected occupied [A1], got %v", occupied)
		}
	})

	t.Run("stores canonical spellings on commit", func(t *testing.T) {
		booking := &Booking{UserID: bob.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-OCC003"}
		if err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"b02"}); err != nil {
			t.Fatalf("expected booking to succeed, got %v", err)
		}

		occupied, err := repo.OccupiedSeats(context.Background(), showtime.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(occupied, []string{"A1", "B2"}) {
			t.Fatalf("expected occupied [A1 B2], got %v", occupied)
		}
	})
}

func TestRepository_GetUserBookings(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	showtime := seedShowtime(t, db, 100)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first := &Booking{UserID: alice.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-HIST01"}
	if err := repo.CreateBookingWithSeats(context.Background(), first, []string{"A1"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}
	second := &Booking{UserID: alice.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-HIST02"}
	if err := repo.CreateBookingWithSeats(context.Background(), second, []string{"B2", "B1"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}
	other := &Booking{UserID: bob.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-HIST03"}
	if err := repo.CreateBookingWithSeats(context.Background(), other, []string{"C1"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	items, err := repo.GetUserBookings(context.Background(), alice.ID, 10, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 bookings for alice, got %d", len(items))
	}
	for _, item := range items {
		if item.MovieTitle != "Test Feature" {
			t.Fatalf("expected joined movie title, got %q", item.MovieTitle)
		}
		if item.ShowDate != "2026-09-02" || item.ShowTime != "18:00" {
			t.Fatalf("expected joined showtime slot, got %s %s", item.ShowDate, item.ShowTime)
		}
	}

	// Seats come back row-major regardless of insertion order.
	for _, item := range items {
		if item.BookingRef == "CBK-20260901-HIST02" {
			if !reflect.DeepEqual(item.Seats, []string{"B1", "B2"}) {
				t.Fatalf("expected seats [B1 B2], got %v", item.Seats)
			}
		}
	}
}

func TestRepository_GetByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	showtime := seedShowtime(t, db, 100)
	user := seedUser(t, db, "alice")

	booking := &Booking{UserID: user.ID, ShowtimeID: showtime.ID, BookingRef: "CBK-20260901-GET01"}
	if err := repo.CreateBookingWithSeats(context.Background(), booking, []string{"D4"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	loaded, err := repo.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(loaded.Seats) != 1 || loaded.Seats[0].SeatLabel != "D4" {
		t.Fatalf("expected preloaded seat D4, got %v", loaded.SeatLabels())
	}

	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
