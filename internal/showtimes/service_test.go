package showtimes

import (
	"context"
	"testing"
	"time"

	"cinereserve/internal/auditoriums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	showtimes map[uuid.UUID]*Showtime
	movies    map[uuid.UUID]bool
	confirmed map[uuid.UUID]int64
	aud       *fakeAuditoriumRepo
}

func newFakeRepo(aud *fakeAuditoriumRepo) *fakeRepo {
	return &fakeRepo{
		showtimes: make(map[uuid.UUID]*Showtime),
		movies:    make(map[uuid.UUID]bool),
		confirmed: make(map[uuid.UUID]int64),
		aud:       aud,
	}
}

// loadRelations mimics the repository's Preload of the auditorium row.
func (f *fakeRepo) loadRelations(showtime *Showtime) {
	if auditorium, ok := f.aud.auditoriums[showtime.AuditoriumID]; ok {
		showtime.Auditorium = *auditorium
	}
}

func (f *fakeRepo) Create(showtime *Showtime) error {
	if showtime.ID == uuid.Nil {
		showtime.ID = uuid.New()
	}
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeRepo) GetByID(id uuid.UUID) (*Showtime, error) {
	showtime, ok := f.showtimes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *showtime
	f.loadRelations(&copied)
	return &copied, nil
}

func (f *fakeRepo) ListByMovieOnDate(movieID uuid.UUID, dayStart, dayEnd time.Time) ([]Showtime, error) {
	var out []Showtime
	for _, showtime := range f.showtimes {
		if showtime.MovieID == movieID && !showtime.StartTime.Before(dayStart) && showtime.StartTime.Before(dayEnd) {
			out = append(out, *showtime)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOnDate(dayStart, dayEnd time.Time) ([]Showtime, error) {
	var out []Showtime
	for _, showtime := range f.showtimes {
		if !showtime.StartTime.Before(dayStart) && showtime.StartTime.Before(dayEnd) {
			out = append(out, *showtime)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(showtime *Showtime) error {
	if _, ok := f.showtimes[showtime.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *showtime
	f.showtimes[showtime.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(id uuid.UUID) error {
	if _, ok := f.showtimes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.showtimes, id)
	return nil
}

func (f *fakeRepo) HasAuditoriumOverlap(auditoriumID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	for id, showtime := range f.showtimes {
		if showtime.AuditoriumID != auditoriumID {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		if showtime.StartTime.Before(end) && showtime.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MovieExists(movieID uuid.UUID) (bool, error) {
	return f.movies[movieID], nil
}

func (f *fakeRepo) CountConfirmedReservations(showtimeID uuid.UUID) (int64, error) {
	return f.confirmed[showtimeID], nil
}

type fakeAuditoriumRepo struct {
	auditoriums map[uuid.UUID]*auditoriums.Auditorium
	seats       map[uuid.UUID][]auditoriums.Seat
}

func newFakeAuditoriumRepo() *fakeAuditoriumRepo {
	return &fakeAuditoriumRepo{
		auditoriums: make(map[uuid.UUID]*auditoriums.Auditorium),
		seats:       make(map[uuid.UUID][]auditoriums.Seat),
	}
}

func (f *fakeAuditoriumRepo) GetByID(id uuid.UUID) (*auditoriums.Auditorium, error) {
	auditorium, ok := f.auditoriums[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return auditorium, nil
}

func (f *fakeAuditoriumRepo) GetSeats(auditoriumID uuid.UUID) ([]auditoriums.Seat, error) {
	return f.seats[auditoriumID], nil
}

type scheduleFixture struct {
	svc          Service
	repo         *fakeRepo
	audRepo      *fakeAuditoriumRepo
	movieID      uuid.UUID
	auditoriumID uuid.UUID
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	audRepo := newFakeAuditoriumRepo()
	repo := newFakeRepo(audRepo)

	movieID := uuid.New()
	repo.movies[movieID] = true

	auditoriumID := uuid.New()
	audRepo.auditoriums[auditoriumID] = &auditoriums.Auditorium{ID: auditoriumID, Name: "Screen 1"}
	audRepo.seats[auditoriumID] = []auditoriums.Seat{
		{ID: uuid.New(), AuditoriumID: auditoriumID, RowLabel: "A", SeatNumber: 1},
		{ID: uuid.New(), AuditoriumID: auditoriumID, RowLabel: "A", SeatNumber: 2},
	}

	return &scheduleFixture{
		svc:          NewService(repo, audRepo),
		repo:         repo,
		audRepo:      audRepo,
		movieID:      movieID,
		auditoriumID: auditoriumID,
	}
}

func price(v int64) *int64 {
	return &v
}

func (fx *scheduleFixture) request(start, end time.Time) *CreateShowtimeRequest {
	return &CreateShowtimeRequest{
		MovieID:      fx.movieID,
		AuditoriumID: fx.auditoriumID,
		StartTime:    start,
		EndTime:      end,
		PriceCents:   price(1250),
	}
}

func TestCreateShowtime(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)

	t.Run("creates a showtime in an empty auditorium", func(t *testing.T) {
		fx := newScheduleFixture(t)

		resp, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, int64(1250), resp.PriceCents)
		assert.Equal(t, "Screen 1", resp.AuditoriumName)
	})

	t.Run("allows a free screening", func(t *testing.T) {
		fx := newScheduleFixture(t)

		req := fx.request(base, base.Add(2*time.Hour))
		req.PriceCents = price(0)
		resp, err := fx.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.PriceCents)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		fx := newScheduleFixture(t)

		_, err := fx.svc.Create(ctx, fx.request(base, base.Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = fx.svc.Create(ctx, fx.request(base, base))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("rejects unknown movie", func(t *testing.T) {
		fx := newScheduleFixture(t)

		req := fx.request(base, base.Add(2*time.Hour))
		req.MovieID = uuid.New()
		_, err := fx.svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrUnknownMovie)
	})

	t.Run("rejects unknown auditorium", func(t *testing.T) {
		fx := newScheduleFixture(t)

		req := fx.request(base, base.Add(2*time.Hour))
		req.AuditoriumID = uuid.New()
		_, err := fx.svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrUnknownAuditorium)
	})

	t.Run("rejects overlapping showtime in same auditorium", func(t *testing.T) {
		fx := newScheduleFixture(t)

		_, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)

		_, err = fx.svc.Create(ctx, fx.request(base.Add(time.Hour), base.Add(3*time.Hour)))
		assert.ErrorIs(t, err, ErrAuditoriumConflict)
	})

	t.Run("enforces the turnaround buffer", func(t *testing.T) {
		fx := newScheduleFixture(t)

		end := base.Add(2 * time.Hour)
		_, err := fx.svc.Create(ctx, fx.request(base, end))
		require.NoError(t, err)

		// 19 minutes after the previous screening ends is too tight.
		_, err = fx.svc.Create(ctx, fx.request(end.Add(19*time.Minute), end.Add(2*time.Hour)))
		assert.ErrorIs(t, err, ErrAuditoriumConflict)

		// A full 20 minute gap is fine.
		_, err = fx.svc.Create(ctx, fx.request(end.Add(20*time.Minute), end.Add(3*time.Hour)))
		assert.NoError(t, err)
	})

	t.Run("buffer does not apply across auditoriums", func(t *testing.T) {
		fx := newScheduleFixture(t)

		otherID := uuid.New()
		fx.audRepo.auditoriums[otherID] = &auditoriums.Auditorium{ID: otherID, Name: "Screen 2"}

		_, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)

		req := fx.request(base, base.Add(2*time.Hour))
		req.AuditoriumID = otherID
		_, err = fx.svc.Create(ctx, req)
		assert.NoError(t, err)
	})
}

func TestUpdateShowtime(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)

	t.Run("a showtime does not conflict with itself", func(t *testing.T) {
		fx := newScheduleFixture(t)

		created, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)

		updated, err := fx.svc.Update(ctx, created.ID, &UpdateShowtimeRequest{
			MovieID:      fx.movieID,
			AuditoriumID: fx.auditoriumID,
			StartTime:    base.Add(30 * time.Minute),
			EndTime:      base.Add(150 * time.Minute),
			PriceCents:   price(1500),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1500), updated.PriceCents)
		assert.Equal(t, base.Add(30*time.Minute), updated.StartTime)
	})

	t.Run("update cannot move into another showtime's window", func(t *testing.T) {
		fx := newScheduleFixture(t)

		_, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)

		later, err := fx.svc.Create(ctx, fx.request(base.Add(5*time.Hour), base.Add(7*time.Hour)))
		require.NoError(t, err)

		_, err = fx.svc.Update(ctx, later.ID, &UpdateShowtimeRequest{
			MovieID:      fx.movieID,
			AuditoriumID: fx.auditoriumID,
			StartTime:    base.Add(time.Hour),
			EndTime:      base.Add(3 * time.Hour),
			PriceCents:   price(1250),
		})
		assert.ErrorIs(t, err, ErrAuditoriumConflict)
	})

	t.Run("unknown showtime", func(t *testing.T) {
		fx := newScheduleFixture(t)

		_, err := fx.svc.Update(ctx, uuid.New(), &UpdateShowtimeRequest{
			MovieID:      fx.movieID,
			AuditoriumID: fx.auditoriumID,
			StartTime:    base,
			EndTime:      base.Add(time.Hour),
			PriceCents:   price(1250),
		})
		assert.ErrorIs(t, err, ErrShowtimeNotFound)
	})
}

func TestDeleteShowtime(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)

	t.Run("deletes a showtime without reservations", func(t *testing.T) {
		fx := newScheduleFixture(t)

		created, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)

		require.NoError(t, fx.svc.Delete(ctx, created.ID))
		_, err = fx.svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrShowtimeNotFound)
	})

	t.Run("refuses while confirmed reservations exist", func(t *testing.T) {
		fx := newScheduleFixture(t)

		created, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
		require.NoError(t, err)
		fx.repo.confirmed[created.ID] = 3

		err = fx.svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, ErrShowtimeHasBookings)

		_, err = fx.svc.Get(ctx, created.ID)
		assert.NoError(t, err)
	})
}

func TestSeatLayout(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)

	fx := newScheduleFixture(t)
	created, err := fx.svc.Create(ctx, fx.request(base, base.Add(2*time.Hour)))
	require.NoError(t, err)

	layout, err := fx.svc.SeatLayout(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, layout.ShowtimeID)
	assert.Equal(t, fx.auditoriumID, layout.AuditoriumID)
	assert.Len(t, layout.Seats, 2)

	_, err = fx.svc.SeatLayout(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}
