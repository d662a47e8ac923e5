package movies

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/pkg/cache"
)

type fakeRepo struct {
	mu        sync.Mutex
	movies    map[uuid.UUID]*Movie
	listCalls int
	listErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{movies: make(map[uuid.UUID]*Movie)}
}

func (r *fakeRepo) List(ctx context.Context) ([]Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie, ok := r.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

func (r *fakeRepo) Create(ctx context.Context, movie *Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie.ID = uuid.New()
	r.movies[movie.ID] = movie
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, movie *Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[movie.ID]; !ok {
		return ErrMovieNotFound
	}
	r.movies[movie.ID] = movie
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

// fakeCache is an in-memory cache.Service with no TTL handling.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (c *fakeCache) Exists(ctx context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func (c *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	_ = c.Set(ctx, key, value, ttl)
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func TestListMovies_CacheAside(t *testing.T) {
	repo := newFakeRepo()
	cacheSvc := newFakeCache()
	svc := NewService(repo)
	svc.SetCacheService(cacheSvc, time.Minute)

	_, err := svc.CreateMovie(context.Background(), CreateMovieRequest{
		Title: "First", Genre: "Drama", Language: "English", DurationMin: 100, Rating: 7.0, ReleaseYear: 2026,
	})
	require.NoError(t, err)

	callsBefore := repo.listCalls

	first, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 1)

	// Second read is served from the cache, not the repository.
	second, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, callsBefore+1, repo.listCalls)
}

func TestListMovies_CacheInvalidatedOnWrite(t *testing.T) {
	repo := newFakeRepo()
	cacheSvc := newFakeCache()
	svc := NewService(repo)
	svc.SetCacheService(cacheSvc, time.Minute)

	_, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheSvc.Exists(context.Background(), cache.KeyMovieList))

	_, err = svc.CreateMovie(context.Background(), CreateMovieRequest{
		Title: "New Arrival", Genre: "Action", Language: "English", DurationMin: 110, Rating: 7.5, ReleaseYear: 2026,
	})
	require.NoError(t, err)

	// The create must blow the list cache so the next read sees the movie.
	assert.False(t, cacheSvc.Exists(context.Background(), cache.KeyMovieList))

	listed, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestListMovies_WithoutCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	listed, err := svc.ListMovies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListMovies_RepoError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.ListMovies(context.Background())
	assert.Error(t, err)
}

func TestUpdateMovie_PartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.CreateMovie(context.Background(), CreateMovieRequest{
		Title: "Original", Genre: "Drama", Language: "English", DurationMin: 100, Rating: 7.0, ReleaseYear: 2026,
	})
	require.NoError(t, err)

	newTitle := "Renamed"
	updated, err := svc.UpdateMovie(context.Background(), created.ID, UpdateMovieRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Drama", updated.Genre)
	assert.Equal(t, 2026, updated.ReleaseYear)
}

func TestUpdateMovie_NotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	title := "Ghost"
	_, err := svc.UpdateMovie(context.Background(), uuid.New(), UpdateMovieRequest{Title: &title})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
