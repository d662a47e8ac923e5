package showtimes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cinebook/internal/movies"
	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	ListShowtimes(c *gin.Context)
	GetShowtime(c *gin.Context)
	CreateShowtime(c *gin.Context)
	DeleteShowtime(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListShowtimes(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("movieId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie ID", nil, err.Error())
		return
	}

	showtimes, err := ctrl.service.ListShowtimes(c.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to list showtimes", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtimes retrieved successfully", showtimes, nil)
}

func (ctrl *controller) GetShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.GetShowtime(c.Request.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to get showtime", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (ctrl *controller) CreateShowtime(c *gin.Context) {
	var req CreateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.CreateShowtime(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (ctrl *controller) DeleteShowtime(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("showtimeId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteShowtime(c.Request.Context(), showtimeID); err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete showtime", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Showtime deleted successfully", nil, nil)
}
