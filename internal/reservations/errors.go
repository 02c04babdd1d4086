package reservations

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmptySeatSelection   = errors.New("at least one seat must be selected")
	ErrShowtimeNotFound     = errors.New("showtime not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrAlreadyCancelled     = errors.New("reservation is already cancelled")
	ErrShowtimeStarted      = errors.New("showtime has already started")
	ErrSeatsNotInAuditorium = errors.New("one or more seats do not belong to the showtime's auditorium")
)

// SeatConflictError reports which of the requested seats were already booked
// when the reservation was attempted.
type SeatConflictError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("%d requested seats are already booked", len(e.SeatIDs))
}

// AsSeatConflict unwraps err into a SeatConflictError if it is one.
func AsSeatConflict(err error) (*SeatConflictError, bool) {
	var conflict *SeatConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
