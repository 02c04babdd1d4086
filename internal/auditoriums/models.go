package auditoriums

import (
	"time"

	"github.com/google/uuid"
)

type Auditorium struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex;size:120"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:AuditoriumID"`
}

func (Auditorium) TableName() string {
	return "auditoriums"
}

type Seat struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AuditoriumID uuid.UUID `json:"auditorium_id" gorm:"type:uuid;not null;index"`
	RowLabel     string    `json:"row_label" gorm:"not null;size:4"`
	SeatNumber   int       `json:"seat_number" gorm:"not null"`
}

func (Seat) TableName() string {
	return "seats"
}

type SeatResponse struct {
	ID         uuid.UUID `json:"id"`
	RowLabel   string    `json:"rowLabel"`
	SeatNumber int       `json:"seatNumber"`
}

func (s *Seat) ToResponse() SeatResponse {
	return SeatResponse{
		ID:         s.ID,
		RowLabel:   s.RowLabel,
		SeatNumber: s.SeatNumber,
	}
}
