package genres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(genre *Genre) error
	GetByID(id uuid.UUID) (*Genre, error)
	GetAll() ([]Genre, error)
	Update(id uuid.UUID, name string) (*Genre, error)
	Delete(id uuid.UUID) error
	CountMovies(id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(genre *Genre) error {
	return r.db.Create(genre).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Genre, error) {
	var genre Genre
	err := r.db.Where("id = ?", id).First(&genre).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *repository) GetAll() ([]Genre, error) {
	var genres []Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *repository) Update(id uuid.UUID, name string) (*Genre, error) {
	var genre Genre
	if err := r.db.Where("id = ?", id).First(&genre).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&genre).Update("name", name).Error; err != nil {
		return nil, err
	}

	return &genre, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Genre{}).Error
}

func (r *repository) CountMovies(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("movies").Where("genre_id = ?", id).Count(&count).Error
	return count, err
}
