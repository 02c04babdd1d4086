package showtimes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinereserve/internal/auditoriums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrAuditoriumConflict  = errors.New("auditorium is occupied in that window")
	ErrUnknownMovie        = errors.New("movie does not exist")
	ErrUnknownAuditorium   = errors.New("auditorium does not exist")
	ErrShowtimeHasBookings = errors.New("showtime has confirmed reservations")
)

// auditoriumBuffer is the minimum turnaround between consecutive showtimes
// in the same auditorium.
const auditoriumBuffer = 20 * time.Minute

type Service interface {
	ListForMovie(ctx context.Context, movieID uuid.UUID, date time.Time) ([]ShowtimeResponse, error)
	ListForDate(ctx context.Context, date time.Time) ([]ShowtimeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error)
	GetModel(ctx context.Context, id uuid.UUID) (*Showtime, error)
	SeatLayout(ctx context.Context, id uuid.UUID) (*SeatLayoutResponse, error)
	Create(ctx context.Context, req *CreateShowtimeRequest) (*ShowtimeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateShowtimeRequest) (*ShowtimeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo           Repository
	auditoriumRepo auditoriums.Repository
}

func NewService(repo Repository, auditoriumRepo auditoriums.Repository) Service {
	return &service{repo: repo, auditoriumRepo: auditoriumRepo}
}

func (s *service) ListForMovie(ctx context.Context, movieID uuid.UUID, date time.Time) ([]ShowtimeResponse, error) {
	dayStart, dayEnd := dayBounds(date)
	results, err := s.repo.ListByMovieOnDate(movieID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}
	return toResponses(results), nil
}

func (s *service) ListForDate(ctx context.Context, date time.Time) ([]ShowtimeResponse, error) {
	dayStart, dayEnd := dayBounds(date)
	results, err := s.repo.ListOnDate(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list showtimes: %w", err)
	}
	return toResponses(results), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error) {
	showtime, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := showtime.ToResponse()
	return &resp, nil
}

func (s *service) GetModel(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	showtime, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowtimeNotFound
		}
		return nil, fmt.Errorf("failed to fetch showtime: %w", err)
	}
	return showtime, nil
}

func (s *service) SeatLayout(ctx context.Context, id uuid.UUID) (*SeatLayoutResponse, error) {
	showtime, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.auditoriumRepo.GetSeats(showtime.AuditoriumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}

	responses := make([]auditoriums.SeatResponse, 0, len(seats))
	for i := range seats {
		responses = append(responses, seats[i].ToResponse())
	}

	return &SeatLayoutResponse{
		ShowtimeID:     showtime.ID,
		AuditoriumID:   showtime.AuditoriumID,
		AuditoriumName: showtime.Auditorium.Name,
		Seats:          responses,
	}, nil
}

func (s *service) Create(ctx context.Context, req *CreateShowtimeRequest) (*ShowtimeResponse, error) {
	if err := s.validateSchedule(req.MovieID, req.AuditoriumID, req.StartTime, req.EndTime, nil); err != nil {
		return nil, err
	}

	showtime := &Showtime{
		MovieID:      req.MovieID,
		AuditoriumID: req.AuditoriumID,
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		PriceCents:   *req.PriceCents,
	}
	if err := s.repo.Create(showtime); err != nil {
		return nil, fmt.Errorf("failed to create showtime: %w", err)
	}

	return s.Get(ctx, showtime.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req *UpdateShowtimeRequest) (*ShowtimeResponse, error) {
	showtime, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateSchedule(req.MovieID, req.AuditoriumID, req.StartTime, req.EndTime, &id); err != nil {
		return nil, err
	}

	showtime.MovieID = req.MovieID
	showtime.AuditoriumID = req.AuditoriumID
	showtime.StartTime = req.StartTime.UTC()
	showtime.EndTime = req.EndTime.UTC()
	showtime.PriceCents = *req.PriceCents

	if err := s.repo.Update(showtime); err != nil {
		return nil, fmt.Errorf("failed to update showtime: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetModel(ctx, id); err != nil {
		return err
	}

	confirmed, err := s.repo.CountConfirmedReservations(id)
	if err != nil {
		return err
	}
	if confirmed > 0 {
		return ErrShowtimeHasBookings
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete showtime: %w", err)
	}
	return nil
}

func (s *service) validateSchedule(movieID, auditoriumID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	if !end.After(start) {
		return ErrInvalidTimeRange
	}

	exists, err := s.repo.MovieExists(movieID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknownMovie
	}

	if _, err := s.auditoriumRepo.GetByID(auditoriumID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownAuditorium
		}
		return err
	}

	// Pad both ends so back-to-back showtimes leave turnaround time.
	overlap, err := s.repo.HasAuditoriumOverlap(
		auditoriumID,
		start.Add(-auditoriumBuffer).UTC(),
		end.Add(auditoriumBuffer).UTC(),
		excludeID,
	)
	if err != nil {
		return fmt.Errorf("failed to check auditorium schedule: %w", err)
	}
	if overlap {
		return ErrAuditoriumConflict
	}
	return nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dayStart, dayStart.Add(24 * time.Hour)
}

func toResponses(results []Showtime) []ShowtimeResponse {
	responses := make([]ShowtimeResponse, 0, len(results))
	for i := range results {
		responses = append(responses, results[i].ToResponse())
	}
	return responses
}
