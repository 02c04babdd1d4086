package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Genres lists all genres.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var out []Genre
	if err := c.do(ctx, http.MethodGet, "/genres", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Movies lists active movies, optionally filtered by genre.
func (c *Client) Movies(ctx context.Context, genreID *uuid.UUID) ([]Movie, error) {
	path := "/movies"
	if genreID != nil {
		path += "?genreId=" + url.QueryEscape(genreID.String())
	}

	var out []Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Movie fetches one movie by id.
func (c *Client) Movie(ctx context.Context, id uuid.UUID) (*Movie, error) {
	var out Movie
	if err := c.do(ctx, http.MethodGet, "/movies/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowtimesForMovie lists a movie's showtimes on the given date.
func (c *Client) ShowtimesForMovie(ctx context.Context, movieID uuid.UUID, date time.Time) ([]Showtime, error) {
	path := fmt.Sprintf("/movies/%s/showtimes?date=%s", movieID, date.Format("2006-01-02"))

	var out []Showtime
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Showtime fetches one showtime by id.
func (c *Client) Showtime(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var out Showtime
	if err := c.do(ctx, http.MethodGet, "/showtimes/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SeatLayout fetches the full seat map of the showtime's auditorium.
func (c *Client) SeatLayout(ctx context.Context, showtimeID uuid.UUID) (*SeatLayout, error) {
	var out SeatLayout
	if err := c.do(ctx, http.MethodGet, "/showtimes/"+showtimeID.String()+"/seats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Availability fetches the booked seat ids for a showtime.
func (c *Client) Availability(ctx context.Context, showtimeID uuid.UUID) (*Availability, error) {
	var out Availability
	if err := c.do(ctx, http.MethodGet, "/showtimes/"+showtimeID.String()+"/availability", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
