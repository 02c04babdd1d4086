package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinereserve/internal/notifications"
	"cinereserve/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Availability(ctx context.Context, showtimeID uuid.UUID) (*AvailabilityResponse, error)
	Create(ctx context.Context, userID uuid.UUID, userEmail string, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*ReservationResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error)
	Cancel(ctx context.Context, userID uuid.UUID, reservationID uuid.UUID) error
}

type service struct {
	repo      Repository
	seatLock  *SeatLockManager
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewService wires the reservation workflow. seatLock may be nil when Redis
// is unavailable; the database transaction alone still guarantees seat
// disjointness.
func NewService(repo Repository, seatLock *SeatLockManager, publisher notifications.Publisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		seatLock:  seatLock,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *service) Availability(ctx context.Context, showtimeID uuid.UUID) (*AvailabilityResponse, error) {
	exists, err := s.repo.ShowtimeExists(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrShowtimeNotFound
	}

	booked, err := s.repo.GetBookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if booked == nil {
		booked = []uuid.UUID{}
	}
	return &AvailabilityResponse{ShowtimeID: showtimeID, BookedSeatIDs: booked}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, userEmail string, showtimeID uuid.UUID, seatIDs []uuid.UUID) (*ReservationResponse, error) {
	seatIDs = dedupeSeats(seatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrEmptySeatSelection
	}

	// Redis fast path: reject contended submissions before touching the
	// database. Postgres remains authoritative.
	lockID := uuid.New().String()
	locked := false
	if s.seatLock != nil {
		if err := s.seatLock.Lock(ctx, lockID, showtimeID, seatIDs); err != nil {
			if conflict, ok := AsSeatConflict(err); ok {
				s.log.LogSeatConflict(ctx, showtimeID.String(), seatStrings(conflict.SeatIDs))
				return nil, conflict
			}
			// Redis being down must not block reservations.
			s.log.Warn("seat lock unavailable, falling back to database", "error", err.Error())
		} else {
			locked = true
		}
	}
	if locked {
		defer func() {
			if err := s.seatLock.Unlock(context.Background(), lockID, showtimeID); err != nil {
				s.log.Warn("failed to release seat lock", "lock_id", lockID, "error", err.Error())
			}
		}()
	}

	reservation := &Reservation{
		UserID:     userID,
		ShowtimeID: showtimeID,
	}
	if err := s.repo.CreateReservationAtomic(ctx, reservation, seatIDs); err != nil {
		if conflict, ok := AsSeatConflict(err); ok {
			s.log.LogSeatConflict(ctx, showtimeID.String(), seatStrings(conflict.SeatIDs))
			return nil, conflict
		}
		return nil, err
	}

	s.log.LogReservationCreated(ctx, reservation.ID.String(), showtimeID.String(), userID.String(), len(seatIDs))

	event := notifications.NewReservationEvent(
		notifications.EventTypeReservationConfirmed,
		reservation.ID, showtimeID, userID, userEmail,
		len(seatIDs), reservation.TotalAmountCents,
	)
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		// Reservation is committed; event delivery is best effort.
		s.log.Warn("failed to publish reservation event", "reservation_id", reservation.ID.String(), "error", err.Error())
	}

	full, err := s.repo.GetByIDWithRelations(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created reservation: %w", err)
	}
	resp := s.toResponse(ctx, full)
	return &resp, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ReservationResponse, error) {
	results, err := s.repo.GetUserReservations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	responses := make([]ReservationResponse, 0, len(results))
	for i := range results {
		responses = append(responses, s.toResponse(ctx, &results[i]))
	}
	return responses, nil
}

func (s *service) Cancel(ctx context.Context, userID uuid.UUID, reservationID uuid.UUID) error {
	reservation, err := s.repo.GetByIDWithRelations(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to fetch reservation: %w", err)
	}

	// Another user's reservation is reported as missing, not forbidden.
	if reservation.UserID != userID {
		return ErrReservationNotFound
	}
	if reservation.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !reservation.Showtime.StartTime.After(s.now()) {
		return ErrShowtimeStarted
	}

	if err := s.repo.CancelIfConfirmed(ctx, reservationID); err != nil {
		if errors.Is(err, ErrAlreadyCancelled) {
			return err
		}
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.log.LogReservationCancelled(ctx, reservationID.String(), reservation.ShowtimeID.String(), userID.String())

	event := notifications.NewReservationEvent(
		notifications.EventTypeReservationCancelled,
		reservationID, reservation.ShowtimeID, userID, "",
		len(reservation.Seats), reservation.TotalAmountCents,
	)
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish cancellation event", "reservation_id", reservationID.String(), "error", err.Error())
	}

	return nil
}

func (s *service) toResponse(ctx context.Context, reservation *Reservation) ReservationResponse {
	seatIDs := make([]uuid.UUID, 0, len(reservation.Seats))
	for i := range reservation.Seats {
		seatIDs = append(seatIDs, reservation.Seats[i].SeatID)
	}

	labels, err := s.repo.GetSeatLabels(ctx, reservation.ID)
	if err != nil {
		s.log.Warn("failed to resolve seat labels", "reservation_id", reservation.ID.String(), "error", err.Error())
	}

	return ReservationResponse{
		ID:               reservation.ID,
		ShowtimeID:       reservation.ShowtimeID,
		MovieTitle:       reservation.Showtime.Movie.Title,
		AuditoriumName:   reservation.Showtime.Auditorium.Name,
		StartTime:        reservation.Showtime.StartTime,
		Status:           reservation.Status,
		SeatIDs:          seatIDs,
		SeatLabels:       labels,
		TotalAmountCents: reservation.TotalAmountCents,
		CreatedAt:        reservation.CreatedAt,
	}
}

func dedupeSeats(seatIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(seatIDs))
	out := make([]uuid.UUID, 0, len(seatIDs))
	for _, id := range seatIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func seatStrings(seatIDs []uuid.UUID) []string {
	out := make([]string, 0, len(seatIDs))
	for _, id := range seatIDs {
		out = append(out, id.String())
	}
	return out
}
