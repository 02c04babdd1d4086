package showtimes

import (
	"time"

	"cinereserve/internal/auditoriums"
	"cinereserve/internal/movies"

	"github.com/google/uuid"
)

type Showtime struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	MovieID      uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	AuditoriumID uuid.UUID `json:"auditorium_id" gorm:"type:uuid;not null;index"`
	StartTime    time.Time `json:"start_time" gorm:"not null;index"`
	EndTime      time.Time `json:"end_time" gorm:"not null"`
	PriceCents   int64     `json:"price_cents" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Movie      movies.Movie           `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	Auditorium auditoriums.Auditorium `json:"auditorium,omitempty" gorm:"foreignKey:AuditoriumID"`
}

func (Showtime) TableName() string {
	return "showtimes"
}

type ShowtimeResponse struct {
	ID             uuid.UUID `json:"id"`
	MovieID        uuid.UUID `json:"movieId"`
	MovieTitle     string    `json:"movieTitle"`
	AuditoriumID   uuid.UUID `json:"auditoriumId"`
	AuditoriumName string    `json:"auditoriumName"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	PriceCents     int64     `json:"priceCents"`
}

func (s *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ID:             s.ID,
		MovieID:        s.MovieID,
		MovieTitle:     s.Movie.Title,
		AuditoriumID:   s.AuditoriumID,
		AuditoriumName: s.Auditorium.Name,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		PriceCents:     s.PriceCents,
	}
}

type SeatLayoutResponse struct {
	ShowtimeID     uuid.UUID                  `json:"showtimeId"`
	AuditoriumID   uuid.UUID                  `json:"auditoriumId"`
	AuditoriumName string                     `json:"auditoriumName"`
	Seats          []auditoriums.SeatResponse `json:"seats"`
}

// PriceCents is a pointer so an explicit zero (a free screening) survives
// the required check while negative prices are still rejected.
type CreateShowtimeRequest struct {
	MovieID      uuid.UUID `json:"movieId" binding:"required"`
	AuditoriumID uuid.UUID `json:"auditoriumId" binding:"required"`
	StartTime    time.Time `json:"startTime" binding:"required"`
	EndTime      time.Time `json:"endTime" binding:"required"`
	PriceCents   *int64    `json:"priceCents" binding:"required,gte=0"`
}

type UpdateShowtimeRequest struct {
	MovieID      uuid.UUID `json:"movieId" binding:"required"`
	AuditoriumID uuid.UUID `json:"auditoriumId" binding:"required"`
	StartTime    time.Time `json:"startTime" binding:"required"`
	EndTime      time.Time `json:"endTime" binding:"required"`
	PriceCents   *int64    `json:"priceCents" binding:"required,gte=0"`
}
