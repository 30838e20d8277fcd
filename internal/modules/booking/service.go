package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/repository"
)

type Service struct {
	bookings     BookingRepository
	participants ParticipantRepository
	rooms        RoomRepository
	locks        RoomLocker
	cache        DayCache
	notifier     Notifier
	log          *slog.Logger
	now          func() time.Time
}

// NewService wires the admission and query paths. locks defaults to an
// in-process LocalRoomLocker; cache and notifier are optional.
func NewService(
	bookings BookingRepository,
	participants ParticipantRepository,
	rooms RoomRepository,
	locks RoomLocker,
	cache DayCache,
	notifier Notifier,
	log *slog.Logger,
) *Service {
	if locks == nil {
		locks = NewLocalRoomLocker()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		bookings:     bookings,
		participants: participants,
		rooms:        rooms,
		locks:        locks,
		cache:        cache,
		notifier:     notifier,
		log:          log,
		now:          time.Now,
	}
}

// CreateBooking admits a booking or explains why it cannot. Checks run in a
// fixed order: participant, room, interval shape, past start, then conflicts.
// On any error nothing is written.
func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	if _, err := s.participants.GetByID(ctx, in.ParticipantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("resolve participant: %w", err)
	}

	if _, err := s.rooms.GetByID(ctx, in.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("resolve room: %w", err)
	}

	start, end := in.Start.UTC(), in.End.UTC()
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	// Checked once, before the room lock; a request that waits on the lock past
	// its own start time is still admitted.
	if start.Before(s.now()) {
		return nil, ErrPastBooking
	}

	b, err := s.admit(ctx, in.ParticipantID, in.RoomID, start, end)
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		"booking_id", b.ID,
		"room_id", b.RoomID,
		"participant_id", b.ParticipantID,
		"start_time", b.StartTime,
		"end_time", b.EndTime,
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, b); err != nil {
			s.log.Warn("booking notification failed", "booking_id", b.ID, "error", err)
		}
	}
	return b, nil
}

// admit is the check-then-commit critical section for one room.
func (s *Service) admit(ctx context.Context, participantID, roomID int64, start, end time.Time) (*domain.Booking, error) {
	unlock, err := s.locks.Lock(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("lock room %d: %w", roomID, err)
	}
	defer unlock()

	existing, err := s.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("load room bookings: %w", err)
	}
	if other, found := FindConflict(existing, start, end); found {
		s.log.Info("booking rejected: room conflict",
			"room_id", roomID,
			"conflicting_booking_id", other.ID,
		)
		return nil, ErrRoomConflict
	}

	b := &domain.Booking{
		ParticipantID: participantID,
		RoomID:        roomID,
		StartTime:     start,
		EndTime:       end,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roomID, dayOf(start)); err != nil {
			s.log.Warn("day cache invalidation failed", "room_id", roomID, "error", err)
		}
	}
	return b, nil
}
