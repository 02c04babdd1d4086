package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeReservationConfirmed EventType = "RESERVATION_CONFIRMED"
	EventTypeReservationCancelled EventType = "RESERVATION_CANCELLED"
)

// ReservationEvent is the message published to Kafka when a reservation
// changes state. Consumers use it for confirmation emails and audit trails.
type ReservationEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          EventType `json:"type"`
	ReservationID uuid.UUID `json:"reservation_id"`
	ShowtimeID    uuid.UUID `json:"showtime_id"`
	UserID        uuid.UUID `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	SeatCount     int       `json:"seat_count"`
	AmountCents   int64     `json:"amount_cents"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType EventType, reservationID, showtimeID, userID uuid.UUID, userEmail string, seatCount int, amountCents int64) *ReservationEvent {
	return &ReservationEvent{
		ID:            uuid.New(),
		Type:          eventType,
		ReservationID: reservationID,
		ShowtimeID:    showtimeID,
		UserID:        userID,
		UserEmail:     userEmail,
		SeatCount:     seatCount,
		AmountCents:   amountCents,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e *ReservationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func FromJSON(data []byte) (*ReservationEvent, error) {
	var event ReservationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetPartitionKey routes all events for one showtime to the same partition
// so per-showtime ordering is preserved.
func (e *ReservationEvent) GetPartitionKey() string {
	return e.ShowtimeID.String()
}
