package bookings

import "errors"

var (
	// ErrSeatConflict means at least one requested seat is already taken.
	// The caller must re-fetch the seat map and pick different seats.
	ErrSeatConflict = errors.New("one or more selected seats are already booked")

	// ErrCapacityExceeded means the showtime has fewer seats left than requested.
	ErrCapacityExceeded = errors.New("not enough seats available for this showtime")

	ErrEmptySeatSelection = errors.New("seat selection is empty")
	ErrInvalidSeatLabel   = errors.New("invalid seat label")
	ErrDuplicateSeatLabel = errors.New("duplicate seat label in selection")

	ErrBookingNotFound = errors.New("booking not found")
	ErrNotBookingOwner = errors.New("booking does not belong to user")

	// ErrStoreUnavailable wraps transient storage failures; retriable by the caller.
	ErrStoreUnavailable = errors.New("booking store unavailable")
)
