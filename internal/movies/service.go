package movies

import (
	"context"
	"fmt"
	"time"

	"cinebook/pkg/cache"

	"github.com/google/uuid"
)

// Service defines the movie catalog business logic
type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error)
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*Movie, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	SetCacheService(cacheService cache.Service, ttl time.Duration)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	catalogTTL   time.Duration
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	s.catalogTTL = ttl
}

func (s *service) ListMovies(ctx context.Context) ([]Movie, error) {
	if s.cacheService != nil {
		var cached []Movie
		err := s.cacheService.GetOrSet(ctx, cache.KeyMovieList, s.catalogTTL,
			func() (interface{}, error) {
				return s.repo.List(ctx)
			}, &cached)
		if err == nil {
			return cached, nil
		}
		// fall through to the repository on cache trouble
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

func (s *service) GetMovie(ctx context.Context, id uuid.UUID) (*Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	movie := &Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Language:    req.Language,
		DurationMin: req.DurationMin,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		PosterURL:   req.PosterURL,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateListCache(ctx)
	return movie, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Language != nil {
		movie.Language = *req.Language
	}
	if req.DurationMin != nil {
		movie.DurationMin = *req.DurationMin
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidateListCache(ctx)
	return movie, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, cache.KeyMovieList)
	}
}
