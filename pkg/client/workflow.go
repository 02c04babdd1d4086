package client

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SeatSession drives the seat selection workflow for one showtime: load the
// seating context, toggle seats locally, then reserve. The server stays
// authoritative for which seats are booked; the session only tracks the
// local selection and the last known availability snapshot.
//
// Reserve never retries on its own. After a conflict the session refreshes
// availability, removes the lost seats from the selection, and reports the
// conflict to the caller, who decides what to do next.
type SeatSession struct {
	client     *Client
	showtimeID uuid.UUID

	mu        sync.Mutex
	loaded    bool
	reserving bool
	showtime  *Showtime
	seats     map[uuid.UUID]Seat
	booked    map[uuid.UUID]struct{}
	selected  map[uuid.UUID]struct{}
}

func NewSeatSession(c *Client, showtimeID uuid.UUID) *SeatSession {
	return &SeatSession{
		client:     c,
		showtimeID: showtimeID,
		seats:      make(map[uuid.UUID]Seat),
		booked:     make(map[uuid.UUID]struct{}),
		selected:   make(map[uuid.UUID]struct{}),
	}
}

// LoadContext fetches the showtime, its seat layout, and current
// availability in parallel, then resets the session state. Any previous
// selection is discarded.
func (s *SeatSession) LoadContext(ctx context.Context) error {
	var (
		showtime     *Showtime
		layout       *SeatLayout
		availability *Availability
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		showtime, err = s.client.Showtime(gctx, s.showtimeID)
		return err
	})
	g.Go(func() error {
		var err error
		layout, err = s.client.SeatLayout(gctx, s.showtimeID)
		return err
	})
	g.Go(func() error {
		var err error
		availability, err = s.client.Availability(gctx, s.showtimeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.showtime = showtime
	s.seats = make(map[uuid.UUID]Seat, len(layout.Seats))
	for _, seat := range layout.Seats {
		s.seats[seat.ID] = seat
	}
	s.booked = make(map[uuid.UUID]struct{}, len(availability.BookedSeatIDs))
	for _, seatID := range availability.BookedSeatIDs {
		s.booked[seatID] = struct{}{}
	}
	s.selected = make(map[uuid.UUID]struct{})
	s.loaded = true
	return nil
}

// Showtime returns the loaded showtime, or nil before LoadContext.
func (s *SeatSession) Showtime() *Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showtime == nil {
		return nil
	}
	showtime := *s.showtime
	return &showtime
}

// ToggleSeat flips a seat in or out of the selection and reports whether the
// seat is selected afterwards. Toggling a booked seat is a no-op; toggling a
// seat that is not part of the layout is an error.
func (s *SeatSession) ToggleSeat(seatID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return false, newError(KindValidation, "seat context not loaded")
	}
	if _, ok := s.seats[seatID]; !ok {
		return false, newError(KindValidation, "seat is not part of this auditorium")
	}
	if _, ok := s.booked[seatID]; ok {
		return false, nil
	}

	if _, ok := s.selected[seatID]; ok {
		delete(s.selected, seatID)
		return false, nil
	}
	s.selected[seatID] = struct{}{}
	return true, nil
}

// ClearSelection deselects every seat.
func (s *SeatSession) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[uuid.UUID]struct{})
}

// SelectedSeats returns the current selection in a stable order.
func (s *SeatSession) SelectedSeats() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.selected)
}

// BookedSeats returns the last known booked seats in a stable order.
func (s *SeatSession) BookedSeats() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.booked)
}

// IsBooked reports whether the seat was booked in the last snapshot.
func (s *SeatSession) IsBooked(seatID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.booked[seatID]
	return ok
}

// TotalCents is the price of the current selection.
func (s *SeatSession) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showtime == nil {
		return 0
	}
	return s.showtime.PriceCents * int64(len(s.selected))
}

// Reserve submits the current selection. Exactly one Reserve may be in
// flight at a time; concurrent calls fail immediately without touching the
// network, as does an empty selection.
//
// On a seat conflict the session refetches availability before returning,
// folds the refreshed snapshot into its state, and drops the lost seats from
// the selection. The returned error carries the conflicting seat ids. The
// caller may adjust the selection and call Reserve again; the session itself
// never retries.
func (s *SeatSession) Reserve(ctx context.Context) (*Reservation, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, newError(KindValidation, "seat context not loaded")
	}
	if s.reserving {
		s.mu.Unlock()
		return nil, newError(KindConflict, "a reservation attempt is already in flight")
	}
	if len(s.selected) == 0 {
		s.mu.Unlock()
		return nil, newError(KindValidation, "no seats selected")
	}
	s.reserving = true
	seatIDs := sortedIDs(s.selected)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.reserving = false
		s.mu.Unlock()
	}()

	reservation, err := s.client.Reserve(ctx, s.showtimeID, seatIDs)
	if err != nil {
		if apiErr, ok := AsError(err); ok && apiErr.Kind == KindConflict {
			s.refreshAfterConflict(ctx, apiErr)
		}
		return nil, err
	}

	s.mu.Lock()
	for _, seatID := range seatIDs {
		s.booked[seatID] = struct{}{}
	}
	s.selected = make(map[uuid.UUID]struct{})
	s.mu.Unlock()

	return reservation, nil
}

// refreshAfterConflict folds a fresh availability snapshot into the session
// after a lost seat race. If the refetch itself fails, the conflicting seats
// reported by the server are applied as a best-effort update.
func (s *SeatSession) refreshAfterConflict(ctx context.Context, conflict *Error) {
	availability, err := s.client.Availability(ctx, s.showtimeID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		s.booked = make(map[uuid.UUID]struct{}, len(availability.BookedSeatIDs))
		for _, seatID := range availability.BookedSeatIDs {
			s.booked[seatID] = struct{}{}
		}
	} else {
		for _, seatID := range conflict.ConflictingSeatIDs {
			s.booked[seatID] = struct{}{}
		}
	}

	for seatID := range s.selected {
		if _, taken := s.booked[seatID]; taken {
			delete(s.selected, seatID)
		}
	}
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
