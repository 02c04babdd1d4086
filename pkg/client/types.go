package client

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Genre struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Movie struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl"`
	DurationMin int       `json:"durationMin"`
	Active      bool      `json:"active"`
	GenreID     uuid.UUID `json:"genreId"`
	GenreName   string    `json:"genreName"`
}

type Showtime struct {
	ID             uuid.UUID `json:"id"`
	MovieID        uuid.UUID `json:"movieId"`
	MovieTitle     string    `json:"movieTitle"`
	AuditoriumID   uuid.UUID `json:"auditoriumId"`
	AuditoriumName string    `json:"auditoriumName"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	PriceCents     int64     `json:"priceCents"`
}

type Seat struct {
	ID         uuid.UUID `json:"id"`
	RowLabel   string    `json:"rowLabel"`
	SeatNumber int       `json:"seatNumber"`
}

type SeatLayout struct {
	ShowtimeID     uuid.UUID `json:"showtimeId"`
	AuditoriumID   uuid.UUID `json:"auditoriumId"`
	AuditoriumName string    `json:"auditoriumName"`
	Seats          []Seat    `json:"seats"`
}

type Availability struct {
	ShowtimeID    uuid.UUID   `json:"showtimeId"`
	BookedSeatIDs []uuid.UUID `json:"bookedSeatIds"`
}

type Reservation struct {
	ID               uuid.UUID   `json:"id"`
	ShowtimeID       uuid.UUID   `json:"showtimeId"`
	MovieTitle       string      `json:"movieTitle"`
	AuditoriumName   string      `json:"auditoriumName"`
	StartTime        time.Time   `json:"startTime"`
	Status           string      `json:"status"`
	SeatIDs          []uuid.UUID `json:"seatIds"`
	SeatLabels       []string    `json:"seatLabels"`
	TotalAmountCents int64       `json:"totalAmountCents"`
	CreatedAt        time.Time   `json:"createdAt"`
}
