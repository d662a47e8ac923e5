package analytics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/utils/response"
)

type Controller interface {
	GetDashboardAnalytics(c *gin.Context)
	GetOverviewMetrics(c *gin.Context)
	GetMoviesByLanguage(c *gin.Context)
	GetTopMovies(c *gin.Context)
	GetDailyBookingStats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetDashboardAnalytics(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboardAnalytics(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load dashboard analytics", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}

func (ctrl *controller) GetOverviewMetrics(c *gin.Context) {
	overview, err := ctrl.service.GetOverviewMetrics(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load overview metrics", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Overview metrics retrieved successfully", overview, nil)
}

func (ctrl *controller) GetMoviesByLanguage(c *gin.Context) {
	breakdown, err := ctrl.service.GetMoviesByLanguage(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load language breakdown", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Language breakdown retrieved successfully", breakdown, nil)
}

func (ctrl *controller) GetTopMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	topMovies, err := ctrl.service.GetTopMovies(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load top movies", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Top movies retrieved successfully", topMovies, nil)
}

func (ctrl *controller) GetDailyBookingStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Failed to load daily booking stats", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Daily booking stats retrieved successfully", stats, nil)
}
