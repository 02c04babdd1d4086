package reports

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetSummary(ctx context.Context) (*SummaryResponse, error)
	GetShowtimeRows(ctx context.Context, dayStart, dayEnd time.Time) ([]ShowtimeReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSummary(ctx context.Context) (*SummaryResponse, error) {
	var summary SummaryResponse
	db := r.db.WithContext(ctx)

	if err := db.Table("reservations").Count(&summary.TotalReservations).Error; err != nil {
		return nil, err
	}
	if err := db.Table("reservations").Where("status = ?", "CONFIRMED").Count(&summary.ConfirmedReservations).Error; err != nil {
		return nil, err
	}
	summary.CancelledReservations = summary.TotalReservations - summary.ConfirmedReservations

	if err := db.Table("reservation_seats").
		Joins("JOIN reservations ON reservations.id = reservation_seats.reservation_id").
		Where("reservations.status = ?", "CONFIRMED").
		Count(&summary.TotalSeatsSold).Error; err != nil {
		return nil, err
	}

	err := db.Table("reservations").
		Where("status = ?", "CONFIRMED").
		Select("COALESCE(SUM(total_amount_cents), 0)").
		Scan(&summary.TotalRevenueCents).Error
	if err != nil {
		return nil, err
	}

	if err := db.Table("movies").Where("active = ?", true).Count(&summary.ActiveMovies).Error; err != nil {
		return nil, err
	}
	if err := db.Table("showtimes").Where("start_time > ?", time.Now().UTC()).Count(&summary.UpcomingShowtimes).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *repository) GetShowtimeRows(ctx context.Context, dayStart, dayEnd time.Time) ([]ShowtimeReportRow, error) {
	var rows []ShowtimeReportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			st.id AS showtime_id,
			m.title AS movie_title,
			a.name AS auditorium_name,
			st.start_time,
			(SELECT COUNT(*) FROM seats s WHERE s.auditorium_id = a.id) AS capacity,
			COUNT(rs.seat_id) AS seats_sold,
			COUNT(rs.seat_id) * st.price_cents AS revenue_cents
		FROM showtimes st
		JOIN movies m ON m.id = st.movie_id
		JOIN auditoriums a ON a.id = st.auditorium_id
		LEFT JOIN reservations r ON r.showtime_id = st.id AND r.status = 'CONFIRMED'
		LEFT JOIN reservation_seats rs ON rs.reservation_id = r.id
		WHERE st.start_time >= ? AND st.start_time < ?
		GROUP BY st.id, m.title, a.name, st.start_time, st.price_cents, a.id
		ORDER BY st.start_time ASC
	`, dayStart, dayEnd).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].Capacity > 0 {
			rows[i].OccupancyPct = float64(rows[i].SeatsSold) / float64(rows[i].Capacity) * 100
		}
	}
	return rows, nil
}
