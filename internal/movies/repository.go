package movies

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	GenreID    *uuid.UUID
	OnlyActive bool
}

type Repository interface {
	Create(movie *Movie) error
	GetByID(id uuid.UUID) (*Movie, error)
	List(filter ListFilter) ([]Movie, error)
	Update(movie *Movie) error
	Delete(id uuid.UUID) error
	GenreExists(genreID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(movie *Movie) error {
	return r.db.Create(movie).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Movie, error) {
	var movie Movie
	if err := r.db.Preload("Genre").First(&movie, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) List(filter ListFilter) ([]Movie, error) {
	query := r.db.Preload("Genre").Order("title ASC")
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}
	if filter.GenreID != nil {
		query = query.Where("genre_id = ?", *filter.GenreID)
	}

	var results []Movie
	err := query.Find(&results).Error
	return results, err
}

func (r *repository) Update(movie *Movie) error {
	return r.db.Omit("Genre").Save(movie).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&Movie{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GenreExists(genreID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Table("genres").Where("id = ?", genreID).Count(&count).Error
	return count > 0, err
}
