package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, statusCode int, message string, data interface{}, errs interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	status := "success"
	if statusCode >= 400 {
		status = "error"
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      status,
		"status_code": statusCode,
		"message":     message,
		"data":        data,
		"errors":      errs,
	})
}

// workflowServer emulates the seat endpoints for one showtime.
type workflowServer struct {
	showtime Showtime
	seats    []Seat

	mu                sync.Mutex
	booked            []uuid.UUID
	availabilityCalls int32
	reserveResponse   func(w http.ResponseWriter, seatIDs []uuid.UUID)
	reserveStarted    chan struct{}
	reserveProceed    chan struct{}
}

func newWorkflowServer() *workflowServer {
	showtimeID := uuid.New()
	seats := []Seat{
		{ID: uuid.New(), RowLabel: "A", SeatNumber: 1},
		{ID: uuid.New(), RowLabel: "A", SeatNumber: 2},
		{ID: uuid.New(), RowLabel: "B", SeatNumber: 1},
		{ID: uuid.New(), RowLabel: "B", SeatNumber: 2},
	}
	return &workflowServer{
		showtime: Showtime{
			ID:             showtimeID,
			MovieID:        uuid.New(),
			MovieTitle:     "Orbital Decay",
			AuditoriumID:   uuid.New(),
			AuditoriumName: "Screen 1",
			StartTime:      time.Now().Add(24 * time.Hour),
			EndTime:        time.Now().Add(26 * time.Hour),
			PriceCents:     1250,
		},
		seats: seats,
	}
}

func (ws *workflowServer) handler() http.Handler {
	mux := http.NewServeMux()
	base := "/api/v1/showtimes/" + ws.showtime.ID.String()

	mux.HandleFunc(base, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", ws.showtime, nil)
	})
	mux.HandleFunc(base+"/seats", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "ok", SeatLayout{
			ShowtimeID:     ws.showtime.ID,
			AuditoriumID:   ws.showtime.AuditoriumID,
			AuditoriumName: ws.showtime.AuditoriumName,
			Seats:          ws.seats,
		}, nil)
	})
	mux.HandleFunc(base+"/availability", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ws.availabilityCalls, 1)
		ws.mu.Lock()
		booked := append([]uuid.UUID{}, ws.booked...)
		ws.mu.Unlock()
		writeEnvelope(w, http.StatusOK, "ok", Availability{ShowtimeID: ws.showtime.ID, BookedSeatIDs: booked}, nil)
	})
	mux.HandleFunc(base+"/reservations", func(w http.ResponseWriter, r *http.Request) {
		if ws.reserveStarted != nil {
			ws.reserveStarted <- struct{}{}
			<-ws.reserveProceed
		}

		var req reserveRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		ws.mu.Lock()
		respond := ws.reserveResponse
		ws.mu.Unlock()
		respond(w, req.SeatIDs)
	})
	return mux
}

func (ws *workflowServer) succeedReservations() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.reserveResponse = func(w http.ResponseWriter, seatIDs []uuid.UUID) {
		ws.mu.Lock()
		ws.booked = append(ws.booked, seatIDs...)
		ws.mu.Unlock()
		writeEnvelope(w, http.StatusCreated, "Reservation created successfully", Reservation{
			ID:               uuid.New(),
			ShowtimeID:       ws.showtime.ID,
			Status:           "CONFIRMED",
			SeatIDs:          seatIDs,
			TotalAmountCents: ws.showtime.PriceCents * int64(len(seatIDs)),
			CreatedAt:        time.Now(),
		}, nil)
	}
}

func (ws *workflowServer) conflictOn(taken ...uuid.UUID) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.booked = append(ws.booked, taken...)
	ws.reserveResponse = func(w http.ResponseWriter, seatIDs []uuid.UUID) {
		writeEnvelope(w, http.StatusConflict, "Some seats were just taken", nil, map[string]interface{}{
			"code":               "SEAT_CONFLICT",
			"conflictingSeatIds": taken,
		})
	}
}

func newSessionForTest(t *testing.T, ws *workflowServer) (*SeatSession, *Client) {
	t.Helper()
	srv := httptest.NewServer(ws.handler())
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	session := NewSeatSession(c, ws.showtime.ID)
	require.NoError(t, session.LoadContext(context.Background()))
	return session, c
}

func TestSeatSessionLoadContext(t *testing.T) {
	ws := newWorkflowServer()
	ws.booked = []uuid.UUID{ws.seats[0].ID}
	session, _ := newSessionForTest(t, ws)

	require.NotNil(t, session.Showtime())
	assert.Equal(t, "Orbital Decay", session.Showtime().MovieTitle)
	assert.Equal(t, []uuid.UUID{ws.seats[0].ID}, session.BookedSeats())
	assert.Empty(t, session.SelectedSeats())
}

func TestSeatSessionToggle(t *testing.T) {
	ws := newWorkflowServer()
	ws.booked = []uuid.UUID{ws.seats[0].ID}
	session, _ := newSessionForTest(t, ws)

	t.Run("select and deselect", func(t *testing.T) {
		selected, err := session.ToggleSeat(ws.seats[1].ID)
		require.NoError(t, err)
		assert.True(t, selected)
		assert.Equal(t, ws.showtime.PriceCents, session.TotalCents())

		selected, err = session.ToggleSeat(ws.seats[1].ID)
		require.NoError(t, err)
		assert.False(t, selected)
		assert.Zero(t, session.TotalCents())
	})

	t.Run("booked seat is a no-op", func(t *testing.T) {
		selected, err := session.ToggleSeat(ws.seats[0].ID)
		require.NoError(t, err)
		assert.False(t, selected)
		assert.Empty(t, session.SelectedSeats())
	})

	t.Run("unknown seat is rejected", func(t *testing.T) {
		_, err := session.ToggleSeat(uuid.New())
		assert.True(t, IsKind(err, KindValidation))
	})
}

func TestSeatSessionReserve(t *testing.T) {
	t.Run("success books seats and clears selection", func(t *testing.T) {
		ws := newWorkflowServer()
		ws.succeedReservations()
		session, _ := newSessionForTest(t, ws)

		_, err := session.ToggleSeat(ws.seats[1].ID)
		require.NoError(t, err)
		_, err = session.ToggleSeat(ws.seats[2].ID)
		require.NoError(t, err)

		reservation, err := session.Reserve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", reservation.Status)
		assert.Equal(t, int64(2500), reservation.TotalAmountCents)

		assert.Empty(t, session.SelectedSeats())
		assert.True(t, session.IsBooked(ws.seats[1].ID))
		assert.True(t, session.IsBooked(ws.seats[2].ID))
	})

	t.Run("empty selection fails before the network", func(t *testing.T) {
		ws := newWorkflowServer()
		ws.succeedReservations()
		session, _ := newSessionForTest(t, ws)

		calls := atomic.LoadInt32(&ws.availabilityCalls)
		_, err := session.Reserve(context.Background())
		assert.True(t, IsKind(err, KindValidation))
		assert.Equal(t, calls, atomic.LoadInt32(&ws.availabilityCalls))
	})

	t.Run("conflict refetches availability and drops lost seats", func(t *testing.T) {
		ws := newWorkflowServer()
		session, _ := newSessionForTest(t, ws)

		_, err := session.ToggleSeat(ws.seats[1].ID)
		require.NoError(t, err)
		_, err = session.ToggleSeat(ws.seats[2].ID)
		require.NoError(t, err)

		// Another user takes one of the selected seats.
		ws.conflictOn(ws.seats[1].ID)

		before := atomic.LoadInt32(&ws.availabilityCalls)
		_, err = session.Reserve(context.Background())
		require.Error(t, err)

		apiErr, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, KindConflict, apiErr.Kind)
		assert.Equal(t, []uuid.UUID{ws.seats[1].ID}, apiErr.ConflictingSeatIDs)

		// Mandatory refetch after a conflict.
		assert.Equal(t, before+1, atomic.LoadInt32(&ws.availabilityCalls))

		// Lost seat is now booked and deselected; the other one survives.
		assert.True(t, session.IsBooked(ws.seats[1].ID))
		assert.Equal(t, []uuid.UUID{ws.seats[2].ID}, session.SelectedSeats())
	})

	t.Run("only one reserve may be in flight", func(t *testing.T) {
		ws := newWorkflowServer()
		ws.succeedReservations()
		ws.reserveStarted = make(chan struct{})
		ws.reserveProceed = make(chan struct{})
		session, _ := newSessionForTest(t, ws)

		_, err := session.ToggleSeat(ws.seats[1].ID)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() {
			_, err := session.Reserve(context.Background())
			done <- err
		}()

		// Wait until the first attempt is on the wire.
		<-ws.reserveStarted

		_, err = session.Reserve(context.Background())
		assert.True(t, IsKind(err, KindConflict))

		close(ws.reserveProceed)
		require.NoError(t, <-done)
	})
}
