package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type reserveRequest struct {
	SeatIDs []uuid.UUID `json:"seatIds"`
}

// Reserve books the given seats for a showtime. Most callers should go
// through SeatSession.Reserve, which also maintains the local selection and
// refreshes availability on conflict.
func (c *Client) Reserve(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*Reservation, error) {
	var out Reservation
	err := c.do(ctx, http.MethodPost, "/showtimes/"+showtimeID.String()+"/reservations", reserveRequest{SeatIDs: seatIDs}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MyReservations lists the session user's reservations, newest first.
func (c *Client) MyReservations(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	if err := c.do(ctx, http.MethodGet, "/reservations/mine", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelReservation cancels one of the session user's reservations. The
// server rejects cancellations after showtime start or on an already
// cancelled reservation with KindInvalidState; an unknown id, including one
// that belongs to another user, surfaces as KindNotFound.
func (c *Client) CancelReservation(ctx context.Context, reservationID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/reservations/"+reservationID.String(), nil, nil)
}
