package genres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinereserve/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreInUse    = errors.New("genre is referenced by movies")
)

const genreListCacheKey = "catalog:genres"

type Service interface {
	List(ctx context.Context) ([]GenreResponse, error)
	Create(ctx context.Context, req *CreateGenreRequest) (*GenreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateGenreRequest) (*GenreResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates the genre service. cacheSvc may be nil when Redis is
// unavailable; reads then always hit the database.
func NewService(repo Repository, cacheSvc cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
	}
}

func (s *service) List(ctx context.Context) ([]GenreResponse, error) {
	if s.cache != nil {
		var cached []GenreResponse
		if err := s.cache.Get(ctx, genreListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	genres, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	responses := make([]GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, genres[i].ToResponse())
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, genreListCacheKey, responses, s.cacheTTL)
	}

	return responses, nil
}

func (s *service) Create(ctx context.Context, req *CreateGenreRequest) (*GenreResponse, error) {
	genre := &Genre{Name: req.Name}
	if err := s.repo.Create(genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	s.invalidate(ctx)
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *UpdateGenreRequest) (*GenreResponse, error) {
	genre, err := s.repo.Update(id, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	s.invalidate(ctx)
	resp := genre.ToResponse()
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}

	inUse, err := s.repo.CountMovies(id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrGenreInUse
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, genreListCacheKey)
	}
}
