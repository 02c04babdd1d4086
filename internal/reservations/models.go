package reservations

import (
	"time"

	"cinereserve/internal/showtimes"

	"github.com/google/uuid"
)

type Reservation struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID           uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ShowtimeID       uuid.UUID `json:"showtime_id" gorm:"type:uuid;not null;index"`
	Status           Status    `json:"status" gorm:"not null;default:'CONFIRMED';index"`
	TotalAmountCents int64     `json:"total_amount_cents" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Showtime showtimes.Showtime `json:"showtime,omitempty" gorm:"foreignKey:ShowtimeID"`
	Seats    []ReservationSeat  `json:"seats,omitempty" gorm:"foreignKey:ReservationID"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ReservationSeat pins a seat to a reservation. ShowtimeID is denormalized so
// the disjointness check is a single indexed lookup.
type ReservationSeat struct {
	ReservationID uuid.UUID `json:"reservation_id" gorm:"type:uuid;primary_key"`
	SeatID        uuid.UUID `json:"seat_id" gorm:"type:uuid;primary_key"`
	ShowtimeID    uuid.UUID `json:"showtime_id" gorm:"type:uuid;not null"`
}

func (ReservationSeat) TableName() string {
	return "reservation_seats"
}

type CreateReservationRequest struct {
	SeatIDs []uuid.UUID `json:"seatIds" binding:"required,min=1"`
}

type ReservationResponse struct {
	ID               uuid.UUID   `json:"id"`
	ShowtimeID       uuid.UUID   `json:"showtimeId"`
	MovieTitle       string      `json:"movieTitle"`
	AuditoriumName   string      `json:"auditoriumName"`
	StartTime        time.Time   `json:"startTime"`
	Status           Status      `json:"status"`
	SeatIDs          []uuid.UUID `json:"seatIds"`
	SeatLabels       []string    `json:"seatLabels"`
	TotalAmountCents int64       `json:"totalAmountCents"`
	CreatedAt        time.Time   `json:"createdAt"`
}

type AvailabilityResponse struct {
	ShowtimeID    uuid.UUID   `json:"showtimeId"`
	BookedSeatIDs []uuid.UUID `json:"bookedSeatIds"`
}
