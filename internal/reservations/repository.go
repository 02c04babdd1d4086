package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ShowtimeExists(ctx context.Context, showtimeID uuid.UUID) (bool, error)
	GetBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error)

	// Concurrency-safe reservation creation
	CreateReservationAtomic(ctx context.Context, reservation *Reservation, seatIDs []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Reservation, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	GetSeatLabels(ctx context.Context, reservationID uuid.UUID) ([]string, error)
	CancelIfConfirmed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ShowtimeExists(ctx context.Context, showtimeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("showtimes").
		Where("id = ?", showtimeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check showtime: %w", err)
	}
	return count > 0, nil
}

func (r *repository) GetBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	var seatIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("reservation_seats").
		Select("reservation_seats.seat_id").
		Joins("JOIN reservations ON reservations.id = reservation_seats.reservation_id").
		Where("reservation_seats.showtime_id = ?", showtimeID).
		Where("reservations.status = ?", StatusConfirmed).
		Scan(&seatIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked seats: %w", err)
	}
	return seatIDs, nil
}

// CreateReservationAtomic creates a reservation with its seats inside one
// transaction. The showtime row is locked FOR UPDATE so concurrent attempts
// on the same showtime serialize, then the requested seats are checked
// against every confirmed reservation before inserting.
func (r *repository) CreateReservationAtomic(ctx context.Context, reservation *Reservation, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the showtime row to serialize competing reservations.
		var showtime struct {
			ID           uuid.UUID `gorm:"column:id"`
			AuditoriumID uuid.UUID `gorm:"column:auditorium_id"`
			StartTime    time.Time `gorm:"column:start_time"`
			PriceCents   int64     `gorm:"column:price_cents"`
		}

		err := tx.Table("showtimes").
			Select("id, auditorium_id, start_time, price_cents").
			Where("id = ?", reservation.ShowtimeID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&showtime).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrShowtimeNotFound
			}
			return fmt.Errorf("failed to lock showtime: %w", err)
		}

		// 2. Every requested seat must belong to the showtime's auditorium.
		var seatCount int64
		err = tx.Table("seats").
			Where("id IN ? AND auditorium_id = ?", seatIDs, showtime.AuditoriumID).
			Count(&seatCount).Error
		if err != nil {
			return fmt.Errorf("failed to validate seats: %w", err)
		}
		if seatCount != int64(len(seatIDs)) {
			return ErrSeatsNotInAuditorium
		}

		// 3. Disjointness against confirmed reservations.
		var taken []uuid.UUID
		err = tx.Table("reservation_seats").
			Select("reservation_seats.seat_id").
			Joins("JOIN reservations ON reservations.id = reservation_seats.reservation_id").
			Where("reservation_seats.showtime_id = ?", reservation.ShowtimeID).
			Where("reservations.status = ?", StatusConfirmed).
			Where("reservation_seats.seat_id IN ?", seatIDs).
			Scan(&taken).Error
		if err != nil {
			return fmt.Errorf("failed to check seat availability: %w", err)
		}
		if len(taken) > 0 {
			return &SeatConflictError{SeatIDs: taken}
		}

		// 4. Price is authoritative from the locked row.
		reservation.Status = StatusConfirmed
		reservation.TotalAmountCents = showtime.PriceCents * int64(len(seatIDs))

		if err := tx.Omit("Showtime", "Seats").Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		seats := make([]ReservationSeat, 0, len(seatIDs))
		for _, seatID := range seatIDs {
			seats = append(seats, ReservationSeat{
				ReservationID: reservation.ID,
				SeatID:        seatID,
				ShowtimeID:    reservation.ShowtimeID,
			})
		}
		if err := tx.Create(&seats).Error; err != nil {
			return fmt.Errorf("failed to create reservation seats: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Showtime.Auditorium").
		Preload("Seats").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var results []Reservation
	err := r.db.WithContext(ctx).
		Preload("Showtime").
		Preload("Showtime.Movie").
		Preload("Showtime.Auditorium").
		Preload("Seats").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *repository) GetSeatLabels(ctx context.Context, reservationID uuid.UUID) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).
		Table("reservation_seats").
		Select("seats.row_label || seats.seat_number").
		Joins("JOIN seats ON seats.id = reservation_seats.seat_id").
		Where("reservation_seats.reservation_id = ?", reservationID).
		Order("seats.row_label ASC, seats.seat_number ASC").
		Scan(&labels).Error
	return labels, err
}

// CancelIfConfirmed flips a CONFIRMED reservation to CANCELLED in one guarded
// UPDATE. A row that is no longer CONFIRMED matches nothing, so only one of
// two concurrent cancels can succeed.
func (r *repository) CancelIfConfirmed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Reservation{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":     StatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}
