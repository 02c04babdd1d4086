package showtimes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(showtime *Showtime) error
	GetByID(id uuid.UUID) (*Showtime, error)
	ListByMovieOnDate(movieID uuid.UUID, dayStart, dayEnd time.Time) ([]Showtime, error)
	ListOnDate(dayStart, dayEnd time.Time) ([]Showtime, error)
	Update(showtime *Showtime) error
	Delete(id uuid.UUID) error
	HasAuditoriumOverlap(auditoriumID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	MovieExists(movieID uuid.UUID) (bool, error)
	CountConfirmedReservations(showtimeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(showtime *Showtime) error {
	return r.db.Omit("Movie", "Auditorium").Create(showtime).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.
		Preload("Movie").
		Preload("Movie.Genre").
		Preload("Auditorium").
		First(&showtime, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *repository) ListByMovieOnDate(movieID uuid.UUID, dayStart, dayEnd time.Time) ([]Showtime, error) {
	var results []Showtime
	err := r.db.
		Preload("Movie").
		Preload("Auditorium").
		Where("movie_id = ? AND start_time >= ? AND start_time < ?", movieID, dayStart, dayEnd).
		Order("start_time ASC").
		Find(&results).Error
	return results, err
}

func (r *repository) ListOnDate(dayStart, dayEnd time.Time) ([]Showtime, error) {
	var results []Showtime
	err := r.db.
		Preload("Movie").
		Preload("Auditorium").
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time ASC").
		Find(&results).Error
	return results, err
}

func (r *repository) Update(showtime *Showtime) error {
	return r.db.Omit("Movie", "Auditorium").Save(showtime).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&Showtime{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasAuditoriumOverlap reports whether any other showtime in the auditorium
// overlaps the [start, end) window. Callers pad the window with the
// turnaround buffer before calling.
func (r *repository) HasAuditoriumOverlap(auditoriumID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Model(&Showtime{}).
		Where("auditorium_id = ?", auditoriumID).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) MovieExists(movieID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("movies").Where("id = ?", movieID).Count(&count).Error
	return count > 0, err
}

func (r *repository) CountConfirmedReservations(showtimeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("reservations").
		Where("showtime_id = ? AND status = ?", showtimeID, "CONFIRMED").
		Count(&count).Error
	return count, err
}
