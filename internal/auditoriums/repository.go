package auditoriums

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(id uuid.UUID) (*Auditorium, error)
	GetSeats(auditoriumID uuid.UUID) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uuid.UUID) (*Auditorium, error) {
	var auditorium Auditorium
	if err := r.db.First(&auditorium, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &auditorium, nil
}

func (r *repository) GetSeats(auditoriumID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.
		Where("auditorium_id = ?", auditoriumID).
		Order("row_label ASC, seat_number ASC").
		Find(&seats).Error
	return seats, err
}
