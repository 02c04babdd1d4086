package movies

import (
	"time"

	"cinereserve/internal/genres"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title       string    `json:"title" gorm:"not null;size:200;index"`
	Description string    `json:"description" gorm:"type:text"`
	PosterURL   string    `json:"poster_url" gorm:"size:500"`
	DurationMin int       `json:"duration_min" gorm:"not null"`
	Active      bool      `json:"active" gorm:"not null;default:true;index"`
	GenreID     uuid.UUID `json:"genre_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Genre genres.Genre `json:"genre,omitempty" gorm:"foreignKey:GenreID"`
}

func (Movie) TableName() string {
	return "movies"
}

type MovieResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl"`
	DurationMin int       `json:"durationMin"`
	Active      bool      `json:"active"`
	GenreID     uuid.UUID `json:"genreId"`
	GenreName   string    `json:"genreName"`
}

func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		PosterURL:   m.PosterURL,
		DurationMin: m.DurationMin,
		Active:      m.Active,
		GenreID:     m.GenreID,
		GenreName:   m.Genre.Name,
	}
}

type CreateMovieRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=4000"`
	PosterURL   string    `json:"posterUrl" binding:"omitempty,url,max=500"`
	DurationMin int       `json:"durationMin" binding:"required,gt=0"`
	GenreID     uuid.UUID `json:"genreId" binding:"required"`
}

type UpdateMovieRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=4000"`
	PosterURL   string    `json:"posterUrl" binding:"omitempty,url,max=500"`
	DurationMin int       `json:"durationMin" binding:"required,gt=0"`
	GenreID     uuid.UUID `json:"genreId" binding:"required"`
	Active      *bool     `json:"active" binding:"required"`
}
