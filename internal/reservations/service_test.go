package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinereserve/internal/auditoriums"
	"cinereserve/internal/movies"
	"cinereserve/internal/notifications"
	"cinereserve/internal/showtimes"
	"cinereserve/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo implements Repository in memory. A mutex stands in for the
// showtime row lock so CreateReservationAtomic keeps its serialization
// guarantee under concurrent callers.
type fakeRepo struct {
	mu           sync.Mutex
	showtime     *showtimes.Showtime
	reservations map[uuid.UUID]*Reservation
	seats        map[uuid.UUID][]uuid.UUID // reservation id -> seat ids
	beforeCancel func()                    // runs ahead of the status guard
}

func newFakeRepo(showtime *showtimes.Showtime) *fakeRepo {
	return &fakeRepo{
		showtime:     showtime,
		reservations: make(map[uuid.UUID]*Reservation),
		seats:        make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeRepo) bookedLocked() map[uuid.UUID]struct{} {
	booked := make(map[uuid.UUID]struct{})
	for id, reservation := range f.reservations {
		if reservation.Status != StatusConfirmed {
			continue
		}
		for _, seatID := range f.seats[id] {
			booked[seatID] = struct{}{}
		}
	}
	return booked
}

func (f *fakeRepo) ShowtimeExists(ctx context.Context, showtimeID uuid.UUID) (bool, error) {
	return showtimeID == f.showtime.ID, nil
}

func (f *fakeRepo) GetBookedSeatIDs(ctx context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []uuid.UUID
	for seatID := range f.bookedLocked() {
		out = append(out, seatID)
	}
	return out, nil
}

func (f *fakeRepo) CreateReservationAtomic(ctx context.Context, reservation *Reservation, seatIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reservation.ShowtimeID != f.showtime.ID {
		return ErrShowtimeNotFound
	}

	booked := f.bookedLocked()
	var taken []uuid.UUID
	for _, seatID := range seatIDs {
		if _, ok := booked[seatID]; ok {
			taken = append(taken, seatID)
		}
	}
	if len(taken) > 0 {
		return &SeatConflictError{SeatIDs: taken}
	}

	reservation.ID = uuid.New()
	reservation.Status = StatusConfirmed
	reservation.TotalAmountCents = f.showtime.PriceCents * int64(len(seatIDs))
	reservation.CreatedAt = time.Now()
	f.reservations[reservation.ID] = reservation
	f.seats[reservation.ID] = append([]uuid.UUID(nil), seatIDs...)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return reservation, nil
}

func (f *fakeRepo) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	copied := *reservation
	copied.Showtime = *f.showtime
	for _, seatID := range f.seats[id] {
		copied.Seats = append(copied.Seats, ReservationSeat{
			ReservationID: id,
			SeatID:        seatID,
			ShowtimeID:    reservation.ShowtimeID,
		})
	}
	return &copied, nil
}

func (f *fakeRepo) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Reservation
	for id, reservation := range f.reservations {
		if reservation.UserID != userID {
			continue
		}
		copied := *reservation
		copied.Showtime = *f.showtime
		for _, seatID := range f.seats[id] {
			copied.Seats = append(copied.Seats, ReservationSeat{ReservationID: id, SeatID: seatID, ShowtimeID: reservation.ShowtimeID})
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeRepo) GetSeatLabels(ctx context.Context, reservationID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (f *fakeRepo) CancelIfConfirmed(ctx context.Context, id uuid.UUID) error {
	if f.beforeCancel != nil {
		f.beforeCancel()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok || reservation.Status != StatusConfirmed {
		return ErrAlreadyCancelled
	}
	reservation.Status = StatusCancelled
	return nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []*notifications.ReservationEvent
}

func (p *capturingPublisher) PublishReservationEvent(ctx context.Context, event *notifications.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func testShowtime(start time.Time) *showtimes.Showtime {
	return &showtimes.Showtime{
		ID:           uuid.New(),
		MovieID:      uuid.New(),
		AuditoriumID: uuid.New(),
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		PriceCents:   1250,
		Movie:        movies.Movie{Title: "Blade Runner"},
		Auditorium:   auditoriums.Auditorium{Name: "Screen 1"},
	}
}

func newTestService(repo Repository, publisher notifications.Publisher) *service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       logger.New(),
		now:       time.Now,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	showtime := testShowtime(time.Now().Add(24 * time.Hour))
	userID := uuid.New()

	t.Run("books seats and computes total from showtime price", func(t *testing.T) {
		repo := newFakeRepo(showtime)
		publisher := &capturingPublisher{}
		svc := newTestService(repo, publisher)

		seatA, seatB := uuid.New(), uuid.New()
		resp, err := svc.Create(ctx, userID, "user@example.com", showtime.ID, []uuid.UUID{seatA, seatB})
		require.NoError(t, err)

		assert.Equal(t, StatusConfirmed, resp.Status)
		assert.Equal(t, int64(2500), resp.TotalAmountCents)
		assert.ElementsMatch(t, []uuid.UUID{seatA, seatB}, resp.SeatIDs)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, notifications.EventTypeReservationConfirmed, publisher.events[0].Type)
		assert.Equal(t, 2, publisher.events[0].SeatCount)
	})

	t.Run("rejects empty seat selection before any repository call", func(t *testing.T) {
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})

		_, err := svc.Create(ctx, userID, "", showtime.ID, nil)
		assert.ErrorIs(t, err, ErrEmptySeatSelection)

		_, err = svc.Create(ctx, userID, "", showtime.ID, []uuid.UUID{uuid.Nil})
		assert.ErrorIs(t, err, ErrEmptySeatSelection)
	})

	t.Run("deduplicates repeated seat ids", func(t *testing.T) {
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})

		seat := uuid.New()
		resp, err := svc.Create(ctx, userID, "", showtime.ID, []uuid.UUID{seat, seat, seat})
		require.NoError(t, err)
		assert.Len(t, resp.SeatIDs, 1)
		assert.Equal(t, showtime.PriceCents, resp.TotalAmountCents)
	})

	t.Run("reports conflicting seats when already booked", func(t *testing.T) {
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})

		seatA, seatB := uuid.New(), uuid.New()
		_, err := svc.Create(ctx, uuid.New(), "", showtime.ID, []uuid.UUID{seatA})
		require.NoError(t, err)

		_, err = svc.Create(ctx, userID, "", showtime.ID, []uuid.UUID{seatA, seatB})
		conflict, ok := AsSeatConflict(err)
		require.True(t, ok, "expected seat conflict, got %v", err)
		assert.Equal(t, []uuid.UUID{seatA}, conflict.SeatIDs)

		// The losing submission must not book the free seat either.
		booked, err := repo.GetBookedSeatIDs(ctx, showtime.ID)
		require.NoError(t, err)
		assert.NotContains(t, booked, seatB)
	})

	t.Run("unknown showtime", func(t *testing.T) {
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})

		_, err := svc.Create(ctx, userID, "", uuid.New(), []uuid.UUID{uuid.New()})
		assert.ErrorIs(t, err, ErrShowtimeNotFound)
	})
}

func TestCreateReservationConcurrent(t *testing.T) {
	ctx := context.Background()
	showtime := testShowtime(time.Now().Add(24 * time.Hour))
	repo := newFakeRepo(showtime)
	svc := newTestService(repo, &capturingPublisher{})

	seats := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	conflicts := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, uuid.New(), "", showtime.ID, seats)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			default:
				if _, ok := AsSeatConflict(err); ok {
					conflicts++
				}
			}
		}()
	}
	wg.Wait()

	// Exactly one submission for the same seats may win.
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	booked, err := repo.GetBookedSeatIDs(ctx, showtime.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, seats, booked)
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setup := func(start time.Time) (*fakeRepo, *service, uuid.UUID) {
		showtime := testShowtime(start)
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})
		resp, err := svc.Create(ctx, userID, "", showtime.ID, []uuid.UUID{uuid.New()})
		if err != nil {
			t.Fatalf("seed reservation: %v", err)
		}
		return repo, svc, resp.ID
	}

	t.Run("owner cancels a confirmed reservation", func(t *testing.T) {
		repo, svc, reservationID := setup(time.Now().Add(24 * time.Hour))

		require.NoError(t, svc.Cancel(ctx, userID, reservationID))

		reservation, err := repo.GetByID(ctx, reservationID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, reservation.Status)
	})

	t.Run("cancelled seats become bookable again", func(t *testing.T) {
		showtime := testShowtime(time.Now().Add(24 * time.Hour))
		repo := newFakeRepo(showtime)
		svc := newTestService(repo, &capturingPublisher{})

		seat := uuid.New()
		resp, err := svc.Create(ctx, userID, "", showtime.ID, []uuid.UUID{seat})
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(ctx, userID, resp.ID))

		_, err = svc.Create(ctx, uuid.New(), "", showtime.ID, []uuid.UUID{seat})
		assert.NoError(t, err)
	})

	t.Run("another user's reservation looks like a missing one", func(t *testing.T) {
		repo, svc, reservationID := setup(time.Now().Add(24 * time.Hour))
		assert.ErrorIs(t, svc.Cancel(ctx, uuid.New(), reservationID), ErrReservationNotFound)

		// And it stays confirmed.
		reservation, err := repo.GetByID(ctx, reservationID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, reservation.Status)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		_, svc, reservationID := setup(time.Now().Add(24 * time.Hour))
		require.NoError(t, svc.Cancel(ctx, userID, reservationID))
		assert.ErrorIs(t, svc.Cancel(ctx, userID, reservationID), ErrAlreadyCancelled)
	})

	t.Run("cancel losing a race is rejected", func(t *testing.T) {
		repo, svc, reservationID := setup(time.Now().Add(24 * time.Hour))

		// A competing cancel lands between the ownership check and the
		// status update. The guarded update must refuse the second one.
		repo.beforeCancel = func() {
			repo.mu.Lock()
			repo.reservations[reservationID].Status = StatusCancelled
			repo.mu.Unlock()
		}
		assert.ErrorIs(t, svc.Cancel(ctx, userID, reservationID), ErrAlreadyCancelled)
	})

	t.Run("rejects cancellation after showtime start", func(t *testing.T) {
		_, svc, reservationID := setup(time.Now().Add(time.Minute))
		svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		assert.ErrorIs(t, svc.Cancel(ctx, userID, reservationID), ErrShowtimeStarted)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, svc, _ := setup(time.Now().Add(24 * time.Hour))
		assert.ErrorIs(t, svc.Cancel(ctx, userID, uuid.New()), ErrReservationNotFound)
	})
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	showtime := testShowtime(time.Now().Add(24 * time.Hour))
	repo := newFakeRepo(showtime)
	svc := newTestService(repo, &capturingPublisher{})

	availability, err := svc.Availability(ctx, showtime.ID)
	require.NoError(t, err)
	assert.NotNil(t, availability.BookedSeatIDs)
	assert.Empty(t, availability.BookedSeatIDs)

	seat := uuid.New()
	_, err = svc.Create(ctx, uuid.New(), "", showtime.ID, []uuid.UUID{seat})
	require.NoError(t, err)

	availability, err = svc.Availability(ctx, showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seat}, availability.BookedSeatIDs)

	_, err = svc.Availability(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}
