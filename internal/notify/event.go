// Package notify delivers booking events to the outside world: a durable
// RabbitMQ queue for downstream consumers and a WebSocket feed for live room
// boards.
package notify

import (
	"context"
	"errors"
	"time"

	"meetingroom/internal/domain"

	"github.com/google/uuid"
)

const EventBookingCreated = "booking_created"

// BookingEvent is the payload published for every admitted booking.
type BookingEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	ParticipantID int64     `json:"participant_id"`
	RoomID        int64     `json:"room_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingCreated(b *domain.Booking) BookingEvent {
	return BookingEvent{
		EventID:       uuid.NewString(),
		Type:          EventBookingCreated,
		BookingID:     b.ID,
		ParticipantID: b.ParticipantID,
		RoomID:        b.RoomID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		OccurredAt:    time.Now().UTC(),
	}
}

// Sink receives booking events.
type Sink interface {
	Send(ctx context.Context, event BookingEvent) error
}

// Fanout sends each booking to every sink. All sinks are attempted even when
// one fails; the failures are joined.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	event := NewBookingCreated(b)
	var errs []error
	for _, s := range f.sinks {
		if err := s.Send(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
