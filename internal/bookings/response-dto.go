package bookings

import (
	"time"

	"github.com/google/uuid"
)

// BookingConfirmation is returned after a successful seat claim.
type BookingConfirmation struct {
	BookingID      uuid.UUID `json:"booking_id"`
	BookingRef     string    `json:"booking_ref"`
	ShowtimeID     uuid.UUID `json:"showtime_id"`
	Seats          []string  `json:"seats"`
	TicketCount    int       `json:"ticket_count"`
	AvailableSeats int       `json:"available_seats"`
	BookedAt       time.Time `json:"booked_at"`
}

// SeatMapResponse describes the auditorium grid for one showtime. The
// client renders Rows x SeatsPerRow seats and greys out Occupied labels.
type SeatMapResponse struct {
	ShowtimeID     uuid.UUID `json:"showtime_id"`
	Rows           []string  `json:"rows"`
	SeatsPerRow    int       `json:"seats_per_row"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Occupied       []string  `json:"occupied"`
}
