package analytics

import (
	"context"
	"fmt"
	"time"

	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// Service defines the analytics service interface
type Service interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
	GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error)
	GetMoviesByLanguage(ctx context.Context) ([]LanguageBreakdown, error)
	GetTopMovies(ctx context.Context, limit int) ([]MoviePerformance, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
	dashboardTTL time.Duration
	log          *logger.Logger
}

// NewService creates a new analytics service instance
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.dashboardTTL = ttl
}

func (s *service) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	// Try to get from cache first
	if s.cacheService != nil {
		var cached DashboardAnalytics
		if err := s.cacheService.Get(ctx, cache.KeyAnalyticsDashboard, &cached); err == nil {
			return &cached, nil
		}
	}

	// Cache miss - get from repository
	dashboard, err := s.repo.GetDashboardAnalytics()
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard analytics: %w", err)
	}

	// Cache the result
	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cache.KeyAnalyticsDashboard, dashboard, s.dashboardTTL); err != nil {
			s.log.WithError(err).Warn("failed to cache dashboard analytics")
		}
	}

	return dashboard, nil
}

func (s *service) GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error) {
	return s.repo.GetOverviewMetrics()
}

func (s *service) GetMoviesByLanguage(ctx context.Context) ([]LanguageBreakdown, error) {
	return s.repo.GetMoviesByLanguage()
}

func (s *service) GetTopMovies(ctx context.Context, limit int) ([]MoviePerformance, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.GetTopMovies(limit)
}

func (s *service) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	return s.repo.GetDailyBookingStats(days)
}
