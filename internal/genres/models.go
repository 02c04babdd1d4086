package genres

import (
	"time"

	"github.com/google/uuid"
)

// Genre is a movie category (Action, Drama, ...). Flat lookup table.
type Genre struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Genre) TableName() string {
	return "genres"
}

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (g *Genre) ToResponse() GenreResponse {
	return GenreResponse{
		ID:   g.ID.String(),
		Name: g.Name,
	}
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type UpdateGenreRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
