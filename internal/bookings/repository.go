package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/seatmap"
	"cinebook/internal/showtimes"
)

// Repository defines the booking data access layer. CreateBookingWithSeats
// is the only write path; it runs the whole seat-claim inside one database
// transaction so that two concurrent requests for the same seat can never
// both succeed.
type Repository interface {
	CreateBookingWithSeats(ctx context.Context, booking *Booking, seatLabels []string) error
	OccupiedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]UserBookingItem, error)
}

// UserBookingItem is one row of a user's booking history joined with the
// movie and showtime it was made for.
type UserBookingItem struct {
	BookingID   uuid.UUID `json:"booking_id"`
	BookingRef  string    `json:"booking_ref"`
	MovieTitle  string    `json:"movie_title"`
	ShowDate    string    `json:"show_date"`
	ShowTime    string    `json:"show_time"`
	TicketCount int       `json:"ticket_count"`
	Seats       []string  `json:"seats"`
	BookedAt    time.Time `json:"booked_at"`
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithSeats atomically claims the given seats for a showtime.
//
// Inside a single transaction it re-reads the occupied seats, checks the
// remaining capacity, inserts the booking and its seat rows, and decrements
// available_seats with a guarded UPDATE. A concurrent writer that slips past
// the read still trips the unique (showtime_id, seat_label) index on insert,
// which rolls the whole transaction back and surfaces as ErrSeatConflict.
func (r *repository) CreateBookingWithSeats(ctx context.Context, booking *Booking, seatLabels []string) error {
	// Canonicalize here as well as in the service layer. The unique index
	// only guards canonical spellings, so a label like "A01" must become
	// "A1" before it reaches the occupied-seat check or the insert.
	labels := make([]string, 0, len(seatLabels))
	seen := make(map[string]struct{}, len(seatLabels))
	for _, raw := range seatLabels {
		label, err := seatmap.Normalize(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeatLabel, err)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSeatLabel, label)
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	seatLabels = labels

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var showtime showtimes.Showtime
		if err := tx.First(&showtime, "id = ?", booking.ShowtimeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return showtimes.ErrShowtimeNotFound
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		if showtime.AvailableSeats < len(seatLabels) {
			return ErrCapacityExceeded
		}

		var taken []string
		if err := tx.Model(&BookingSeat{}).
			Where("showtime_id = ? AND seat_label IN ?", booking.ShowtimeID, seatLabels).
			Pluck("seat_label", &taken).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if len(taken) > 0 {
			return ErrSeatConflict
		}

		booking.TicketCount = len(seatLabels)
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		seats := make([]BookingSeat, 0, len(seatLabels))
		for _, label := range seatLabels {
			seats = append(seats, BookingSeat{
				BookingID:  booking.ID,
				ShowtimeID: booking.ShowtimeID,
				SeatLabel:  label,
			})
		}
		if err := tx.Create(&seats).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSeatConflict
			}
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		result := tx.Model(&showtimes.Showtime{}).
			Where("id = ? AND available_seats >= ?", booking.ShowtimeID, len(seatLabels)).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", len(seatLabels)))
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCapacityExceeded
		}

		booking.Seats = seats
		return nil
	})
	return err
}

// OccupiedSeats returns the taken seat labels for a showtime in row-major
// order (A1 before A2 before B1).
func (r *repository) OccupiedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	var labels []string
	if err := r.db.WithContext(ctx).Model(&BookingSeat{}).
		Where("showtime_id = ?", showtimeID).
		Pluck("seat_label", &labels).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	seatmap.SortLabels(labels)
	return labels, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Seats").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &booking, nil
}

// GetUserBookings returns the user's booking history newest first, each row
// joined with its movie title and showtime slot.
func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]UserBookingItem, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	type bookingRow struct {
		BookingID   uuid.UUID
		BookingRef  string
		MovieTitle  string
		ShowDate    string
		ShowTime    string
		TicketCount int
		BookedAt    time.Time
	}

	var rows []bookingRow
	err := r.db.WithContext(ctx).Table("bookings").
		Select("bookings.id AS booking_id, bookings.booking_ref, movies.title AS movie_title, showtimes.show_date, showtimes.show_time, bookings.ticket_count, bookings.created_at AS booked_at").
		Joins("JOIN showtimes ON showtimes.id = bookings.showtime_id").
		Joins("JOIN movies ON movies.id = showtimes.movie_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	items := make([]UserBookingItem, 0, len(rows))
	if len(rows) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.BookingID)
	}

	var seats []BookingSeat
	if err := r.db.WithContext(ctx).
		Where("booking_id IN ?", ids).
		Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	seatsByBooking := make(map[uuid.UUID][]string, len(rows))
	for _, seat := range seats {
		seatsByBooking[seat.BookingID] = append(seatsByBooking[seat.BookingID], seat.SeatLabel)
	}

	for _, row := range rows {
		labels := seatsByBooking[row.BookingID]
		seatmap.SortLabels(labels)
		items = append(items, UserBookingItem{
			BookingID:   row.BookingID,
			BookingRef:  row.BookingRef,
			MovieTitle:  row.MovieTitle,
			ShowDate:    row.ShowDate,
			ShowTime:    row.ShowTime,
			TicketCount: row.TicketCount,
			Seats:       labels,
			BookedAt:    row.BookedAt,
		})
	}
	return items, nil
}
