package movies

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Movie struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Genre       string    `json:"genre" gorm:"size:100"`
	Language    string    `json:"language" gorm:"size:50"`
	DurationMin int       `json:"duration_min" gorm:"check:duration_min > 0"`
	Rating      float64   `json:"rating" gorm:"check:rating >= 0 AND rating <= 10"`
	ReleaseYear int       `json:"release_year" gorm:"index"`
	Description string    `json:"description" gorm:"type:text"`
	PosterURL   string    `json:"poster_url" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CreateMovieRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Genre       string  `json:"genre" binding:"max=100"`
	Language    string  `json:"language" binding:"max=50"`
	DurationMin int     `json:"duration_min" binding:"required,min=1,max=600"`
	Rating      float64 `json:"rating" binding:"min=0,max=10"`
	ReleaseYear int     `json:"release_year" binding:"required,min=1888"`
	Description string  `json:"description" binding:"max=2000"`
	PosterURL   string  `json:"poster_url" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Genre       *string  `json:"genre" binding:"omitempty,max=100"`
	Language    *string  `json:"language" binding:"omitempty,max=50"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=1,max=600"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=10"`
	ReleaseYear *int     `json:"release_year" binding:"omitempty,min=1888"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	PosterURL   *string  `json:"poster_url" binding:"omitempty,url"`
}
