package database

import (
	"cinereserve/internal/auditoriums"
	"cinereserve/internal/genres"
	"cinereserve/internal/movies"
	"cinereserve/internal/reservations"
	"cinereserve/internal/showtimes"
	"cinereserve/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&genres.Genre{},
		&movies.Movie{},
		&auditoriums.Auditorium{},
		&auditoriums.Seat{},
		&showtimes.Showtime{},
		&reservations.Reservation{},
		&reservations.ReservationSeat{},
	)
}
