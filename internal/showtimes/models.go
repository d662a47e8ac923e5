package showtimes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Showtime struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	MovieID        uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	ShowDate       string    `json:"show_date" gorm:"not null;size:10"` // YYYY-MM-DD
	ShowTime       string    `json:"show_time" gorm:"not null;size:5"`  // HH:MM
	TotalSeats     int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	AvailableSeats int       `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *Showtime) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CreateShowtimeRequest struct {
	MovieID    string `json:"movie_id" binding:"required,uuid"`
	ShowDate   string `json:"show_date" binding:"required,datetime=2006-01-02"`
	ShowTime   string `json:"show_time" binding:"required,datetime=15:04"`
	TotalSeats int    `json:"total_seats" binding:"omitempty,min=1,max=100"`
}
