package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"
)

type Controller interface {
	CreateBooking(c *gin.Context)
	GetSeatMap(c *gin.Context)
	GetUserBookings(c *gin.Context)
	GetBooking(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	confirmation, err := ctrl.service.CommitBooking(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.respondBookingError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking confirmed", confirmation, nil)
}

// respondBookingError maps the booking error taxonomy onto HTTP statuses.
// Conflicts are 409 so clients know to refresh the seat map and retry.
func (ctrl *controller) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, showtimes.ErrShowtimeNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
	case errors.Is(err, ErrSeatConflict):
		response.RespondJSON(c, "error", http.StatusConflict, "One or more seats are already booked", nil, err.Error())
	case errors.Is(err, ErrCapacityExceeded):
		response.RespondJSON(c, "error", http.StatusConflict, "Not enough seats available", nil, err.Error())
	case errors.Is(err, ErrEmptySeatSelection),
		errors.Is(err, ErrInvalidSeatLabel),
		errors.Is(err, ErrDuplicateSeatLabel):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid seat selection", nil, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Booking store unavailable, please retry", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	}
}

func (ctrl *controller) GetSeatMap(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	seatMap, err := ctrl.service.GetSeatMap(c.Request.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, showtimes.ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load seat map", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (ctrl *controller) GetUserBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	bookings, err := ctrl.service.GetUserBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load bookings", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"count":  len(bookings),
		},
	}, nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	isAdmin := c.GetString("user_role") == string(users.RoleAdmin)
	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrNotBookingOwner):
			// Hide other users' bookings behind the same 404.
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load booking", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
