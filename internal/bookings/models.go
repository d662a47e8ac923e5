package bookings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is an immutable record binding a user, a showtime and a set of
// seats. Bookings are append-only; there is no cancellation path.
type Booking struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowtimeID  uuid.UUID `gorm:"type:uuid;index;not null" json:"showtime_id"`
	TicketCount int       `gorm:"not null;check:ticket_count > 0" json:"ticket_count"`
	BookingRef  string    `gorm:"unique;not null" json:"booking_ref"`
	CreatedAt   time.Time `json:"created_at"`

	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat is one row of the seat ledger. The composite unique index on
// (showtime_id, seat_label) is the database-level guarantee that no seat is
// ever sold twice for the same showtime.
type BookingSeat struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	ShowtimeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_showtime_seat" json:"showtime_id"`
	SeatLabel  string    `gorm:"not null;size:4;uniqueIndex:uniq_showtime_seat" json:"seat_label"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (s *BookingSeat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

// SeatLabels returns the booking's seat labels in stored order.
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, seat := range b.Seats {
		labels = append(labels, seat.SeatLabel)
	}
	return labels
}

// SeatNumbers renders the labels comma-joined for tickets ("A1,A2").
func (b *Booking) SeatNumbers() string {
	return strings.Join(b.SeatLabels(), ",")
}
