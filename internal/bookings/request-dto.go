package bookings

// CreateBookingRequest is the payload for booking seats on a showtime.
// Seat labels are case-insensitive; "a1" and "A1" name the same seat.
type CreateBookingRequest struct {
	ShowtimeID string   `json:"showtime_id" binding:"required,uuid"`
	Seats      []string `json:"seats" binding:"required,min=1,max=100,dive,required"`
}
