package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds supporting indexes for the booking hot path.
// The unique (showtime_id, seat_label) constraint itself is created by
// AutoMigrate from the BookingSeat model tags.
func MigrateConstraints(db *gorm.DB) error {
	// Index for seat availability lookups per showtime
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_showtime
		ON booking_seats (showtime_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for listing a user's bookings newest first
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
