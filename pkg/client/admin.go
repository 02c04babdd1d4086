package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Admin operations. They require a session whose user has the ADMIN or
// SUPER_ADMIN role; otherwise the server answers with KindUnauthorized.

type CreateMovieInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	DurationMin int       `json:"durationMin"`
	GenreID     uuid.UUID `json:"genreId"`
}

type UpdateMovieInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl,omitempty"`
	DurationMin int       `json:"durationMin"`
	GenreID     uuid.UUID `json:"genreId"`
	Active      *bool     `json:"active"`
}

type CreateShowtimeInput struct {
	MovieID      uuid.UUID `json:"movieId"`
	AuditoriumID uuid.UUID `json:"auditoriumId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	PriceCents   int64     `json:"priceCents"`
}

type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowtimeReportRow struct {
	ShowtimeID     uuid.UUID `json:"showtimeId"`
	MovieTitle     string    `json:"movieTitle"`
	AuditoriumName string    `json:"auditoriumName"`
	StartTime      time.Time `json:"startTime"`
	Capacity       int64     `json:"capacity"`
	SeatsSold      int64     `json:"seatsSold"`
	RevenueCents   int64     `json:"revenueCents"`
	OccupancyPct   float64   `json:"occupancyPct"`
}

type ReportSummary struct {
	TotalReservations     int64 `json:"totalReservations"`
	ConfirmedReservations int64 `json:"confirmedReservations"`
	CancelledReservations int64 `json:"cancelledReservations"`
	TotalSeatsSold        int64 `json:"totalSeatsSold"`
	TotalRevenueCents     int64 `json:"totalRevenueCents"`
	ActiveMovies          int64 `json:"activeMovies"`
	UpcomingShowtimes     int64 `json:"upcomingShowtimes"`
}

func (c *Client) CreateGenre(ctx context.Context, name string) (*Genre, error) {
	var out Genre
	err := c.do(ctx, http.MethodPost, "/admin/genres", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGenre(ctx context.Context, id uuid.UUID, name string) (*Genre, error) {
	var out Genre
	err := c.do(ctx, http.MethodPut, "/admin/genres/"+id.String(), map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/genres/"+id.String(), nil, nil)
}

func (c *Client) CreateMovie(ctx context.Context, input CreateMovieInput) (*Movie, error) {
	var out Movie
	if err := c.do(ctx, http.MethodPost, "/admin/movies", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMovie(ctx context.Context, id uuid.UUID, input UpdateMovieInput) (*Movie, error) {
	var out Movie
	if err := c.do(ctx, http.MethodPut, "/admin/movies/"+id.String(), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/movies/"+id.String(), nil, nil)
}

func (c *Client) CreateShowtime(ctx context.Context, input CreateShowtimeInput) (*Showtime, error) {
	var out Showtime
	if err := c.do(ctx, http.MethodPost, "/admin/showtimes", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateShowtime(ctx context.Context, id uuid.UUID, input CreateShowtimeInput) (*Showtime, error) {
	var out Showtime
	if err := c.do(ctx, http.MethodPut, "/admin/showtimes/"+id.String(), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteShowtime(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/showtimes/"+id.String(), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PromoteUser(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var out AdminUser
	if err := c.do(ctx, http.MethodPost, "/admin/users/"+id.String()+"/promote", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DemoteUser(ctx context.Context, id uuid.UUID) (*AdminUser, error) {
	var out AdminUser
	if err := c.do(ctx, http.MethodPost, "/admin/users/"+id.String()+"/demote", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReportSummary(ctx context.Context) (*ReportSummary, error) {
	var out ReportSummary
	if err := c.do(ctx, http.MethodGet, "/admin/reports/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowtimeReport fetches per-showtime occupancy rows for one calendar day.
func (c *Client) ShowtimeReport(ctx context.Context, date time.Time) ([]ShowtimeReportRow, error) {
	var out []ShowtimeReportRow
	path := "/admin/reports/showtimes?date=" + date.Format("2006-01-02")
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
