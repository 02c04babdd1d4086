package movies

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
	ErrMovieNotFound = errors.New("movie not found")
	ErrUnknownGenre  = errors.New("genre does not exist")
)

const movieCachePrefix = "catalog:movies"

type Service interface {
	List(ctx context.Context, genreID *uuid.UUID) ([]MovieResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	ListAdmin(ctx context.Context) ([]MovieResponse, error)
	Create(ctx context.Context, req *CreateMovieRequest) (*MovieResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateMovieRequest) (*MovieResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

func NewService(repo Repository, cacheSvc cache.Service, cacheTTL time.Duration) Service {
	return &service{repo: repo, cache: cacheSvc, cacheTTL: cacheTTL}
}

func (s *service) List(ctx context.Context, genreID *uuid.UUID) ([]MovieResponse, error) {
	key := movieCachePrefix + ":all"
	if genreID != nil {
		key = movieCachePrefix + ":genre:" + genreID.String()
	}

	fetch := func() ([]MovieResponse, error) {
		results, err := s.repo.List(ListFilter{GenreID: genreID, OnlyActive: true})
		if err != nil {
			return nil, fmt.Errorf("failed to list movies: %w", err)
		}
		return toResponses(results), nil
	}

	if s.cache == nil {
		return fetch()
	}

	var responses []MovieResponse
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return fetch()
	}, &responses)
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	fetch := func() (*MovieResponse, error) {
		movie, err := s.repo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMovieNotFound
			}
			return nil, fmt.Errorf("failed to fetch movie: %w", err)
		}
		resp := movie.ToResponse()
		return &resp, nil
	}

	if s.cache == nil {
		return fetch()
	}

	var resp MovieResponse
	key := movieCachePrefix + ":id:" + id.String()
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return fetch()
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) ListAdmin(ctx context.Context) ([]MovieResponse, error) {
	results, err := s.repo.List(ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return toResponses(results), nil
}

func (s *service) Create(ctx context.Context, req *CreateMovieRequest) (*MovieResponse, error) {
	exists, err := s.repo.GenreExists(req.GenreID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownGenre
	}

	movie := &Movie{
		Title:       req.Title,
		Description: req.Description,
		PosterURL:   req.PosterURL,
		DurationMin: req.DurationMin,
		Active:      true,
		GenreID:     req.GenreID,
	}
	if err := s.repo.Create(movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidate(ctx)
	return s.Get(ctx, movie.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *UpdateMovieRequest) (*MovieResponse, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	if req.GenreID != movie.GenreID {
		exists, err := s.repo.GenreExists(req.GenreID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownGenre
		}
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.PosterURL = req.PosterURL
	movie.DurationMin = req.DurationMin
	movie.GenreID = req.GenreID
	movie.Active = *req.Active

	if err := s.repo.Update(movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidate(ctx)
	return s.Get(ctx, movie.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.DeletePattern(ctx, movieCachePrefix+":*")
	}
}

func toResponses(results []Movie) []MovieResponse {
	responses := make([]MovieResponse, 0, len(results))
	for i := range results {
		responses = append(responses, results[i].ToResponse())
	}
	return responses
}
