package main

import (
	"context"
	"fmt"
	"log"

	"cinebook/internal/movies"
	"cinebook/internal/seatmap"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting CineBook Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"booking_seats",
		"bookings",
		"showtimes",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	if err := s.SeedShowtimes(ctx, movieIDs); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	return nil
}

// SeedUsers creates an admin account plus a few demo users
func (s *Seeder) SeedUsers(ctx context.Context) error {
	fmt.Println("  Seeding users...")

	type seedUser struct {
		Username string
		Email    string
		Password string
		Role     users.Role
	}

	seedUsers := []seedUser{
		{"admin", "admin@cinebook.local", "admin123", users.RoleAdmin},
		{"alice", "alice@example.com", "password123", users.RoleUser},
		{"bob", "bob@example.com", "password123", users.RoleUser},
		{"charlie", "charlie@example.com", "password123", users.RoleUser},
	}

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &users.User{
			Username: su.Username,
			Email:    su.Email,
			Password: string(hash),
			Role:     su.Role,
		}

		if err := s.db.PostgreSQL.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.Username, err)
		}
		fmt.Printf("    Created user: %s (%s)\n", su.Username, su.Role)
	}

	return nil
}

// SeedMovies creates the demo movie catalog
func (s *Seeder) SeedMovies(ctx context.Context) ([]uuid.UUID, error) {
	fmt.Println("  Seeding movies...")

	seedMovies := []movies.Movie{
		{Title: "The Last Horizon", Genre: "Sci-Fi", Language: "English", DurationMin: 142, Rating: 8.4, ReleaseYear: 2026, Description: "A deep-space crew races a collapsing wormhole home."},
		{Title: "Monsoon Letters", Genre: "Drama", Language: "Hindi", DurationMin: 128, Rating: 7.9, ReleaseYear: 2026, Description: "Two strangers connected by undelivered mail."},
		{Title: "Midnight Circuit", Genre: "Thriller", Language: "English", DurationMin: 110, Rating: 7.2, ReleaseYear: 2025, Description: "A getaway driver takes one last job."},
		{Title: "La Ciudad Dorada", Genre: "Adventure", Language: "Spanish", DurationMin: 135, Rating: 8.1, ReleaseYear: 2025, Description: "An archaeologist chases a myth across the Andes."},
		{Title: "Paper Cranes", Genre: "Animation", Language: "Japanese", DurationMin: 96, Rating: 8.8, ReleaseYear: 2024, Description: "A folded bird comes to life in post-war Kyoto."},
		{Title: "Static", Genre: "Horror", Language: "English", DurationMin: 89, Rating: 6.5, ReleaseYear: 2024, Description: "An overnight radio host hears tomorrow's news."},
	}

	ids := make([]uuid.UUID, 0, len(seedMovies))
	for i := range seedMovies {
		movie := &seedMovies[i]
		if err := s.db.PostgreSQL.WithContext(ctx).Create(movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}
		ids = append(ids, movie.ID)
		fmt.Printf("    Created movie: %s (%d)\n", movie.Title, movie.ReleaseYear)
	}

	return ids, nil
}

// SeedShowtimes creates a few slots per movie over the coming days
func (s *Seeder) SeedShowtimes(ctx context.Context, movieIDs []uuid.UUID) error {
	fmt.Println("  Seeding showtimes...")

	dates := []string{"2026-09-02", "2026-09-03", "2026-09-04"}
	slots := []string{"14:30", "18:00", "21:15"}

	count := 0
	for _, movieID := range movieIDs {
		for _, date := range dates {
			for _, slot := range slots {
				showtime := &showtimes.Showtime{
					MovieID:        movieID,
					ShowDate:       date,
					ShowTime:       slot,
					TotalSeats:     seatmap.Capacity,
					AvailableSeats: seatmap.Capacity,
				}
				if err := s.db.PostgreSQL.WithContext(ctx).Create(showtime).Error; err != nil {
					return fmt.Errorf("failed to create showtime: %w", err)
				}
				count++
			}
		}
	}

	fmt.Printf("    Created %d showtimes\n", count)
	return nil
}
