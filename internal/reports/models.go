package reports

import (
	"time"

	"github.com/google/uuid"
)

// SummaryResponse aggregates the whole system for the admin dashboard.
type SummaryResponse struct {
	TotalReservations     int64 `json:"totalReservations"`
	ConfirmedReservations int64 `json:"confirmedReservations"`
	CancelledReservations int64 `json:"cancelledReservations"`
	TotalSeatsSold        int64 `json:"totalSeatsSold"`
	TotalRevenueCents     int64 `json:"totalRevenueCents"`
	ActiveMovies          int64 `json:"activeMovies"`
	UpcomingShowtimes     int64 `json:"upcomingShowtimes"`
}

// ShowtimeReportRow is one showtime's performance on the requested date.
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
