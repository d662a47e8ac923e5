package showtimes

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/seatmap"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

// Service defines the showtime catalog business logic
type Service interface {
	ListShowtimes(ctx context.Context, movieID uuid.UUID) ([]Showtime, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error)
	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error)
	DeleteShowtime(ctx context.Context, id uuid.UUID) error
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo         Repository
	movieRepo    movies.Repository
	cacheService cache.Service
	catalogTTL   time.Duration
}

func NewService(repo Repository, movieRepo movies.Repository) Service {
	return &service{repo: repo, movieRepo: movieRepo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.catalogTTL = ttl
}

func (s *service) ListShowtimes(ctx context.Context, movieID uuid.UUID) ([]Showtime, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		key := cache.BuildShowtimeListKey(movieID.String())
		var cached []Showtime
		err := s.cacheService.GetOrSet(ctx, key, s.catalogTTL,
			func() (interface{}, error) {
				return s.repo.ListByMovie(ctx, movieID)
			}, &cached)
		if err == nil {
			return cached, nil
		}
	}

	showtimes, err := s.repo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}
	return showtimes, nil
}

func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*Showtime, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID: %w", err)
	}

	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	totalSeats := req.TotalSeats
	if totalSeats == 0 {
		totalSeats = seatmap.Capacity
	}

	showtime := &Showtime{
		MovieID:        movieID,
		ShowDate:       req.ShowDate,
		ShowTime:       req.ShowTime,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}

	if err := s.repo.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	s.invalidateListCache(ctx, movieID)
	return showtime, nil
}

func (s *service) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	showtime, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx, showtime.MovieID)
	return nil
}

func (s *service) invalidateListCache(ctx context.Context, movieID uuid.UUID) {
	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, cache.BuildShowtimeListKey(movieID.String()))
	}
}
