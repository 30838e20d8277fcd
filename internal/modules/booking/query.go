package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"meetingroom/internal/domain"
	"meetingroom/internal/repository"
)

// ListBookings returns every booking in insertion order.
func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// ListBookingsForRoomOnDate returns the bookings of roomID that start on the
// calendar date of date (UTC), earliest first.
func (s *Service) ListBookingsForRoomOnDate(ctx context.Context, roomID int64, date time.Time) ([]domain.Booking, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("resolve room: %w", err)
	}

	day := dayOf(date)

	if s.cache == nil {
		return s.loadDay(ctx, roomID, day)
	}

	cached, ok, err := s.cache.Get(ctx, roomID, day)
	if err != nil {
		s.log.Warn("day cache read failed", "room_id", roomID, "error", err)
	} else if ok {
		return cached, nil
	}

	// The fill runs under the room lock so it cannot land after a concurrent
	// admission has committed and invalidated the same entry.
	unlock, err := s.locks.Lock(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("lock room %d: %w", roomID, err)
	}
	defer unlock()

	out, err := s.loadDay(ctx, roomID, day)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, roomID, day, out); err != nil {
		s.log.Warn("day cache write failed", "room_id", roomID, "error", err)
	}
	return out, nil
}

func (s *Service) loadDay(ctx context.Context, roomID int64, day time.Time) ([]domain.Booking, error) {
	out, err := s.bookings.ListByRoomBetween(ctx, roomID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// DescribeBookings resolves each booking's participant and room by id.
// References that no longer resolve are left nil.
func (s *Service) DescribeBookings(ctx context.Context, bookings []domain.Booking) ([]domain.BookingView, error) {
	participantIDs := make([]int64, 0, len(bookings))
	roomIDs := make([]int64, 0, len(bookings))
	seenP := make(map[int64]bool)
	seenR := make(map[int64]bool)
	for _, b := range bookings {
		if !seenP[b.ParticipantID] {
			seenP[b.ParticipantID] = true
			participantIDs = append(participantIDs, b.ParticipantID)
		}
		if !seenR[b.RoomID] {
			seenR[b.RoomID] = true
			roomIDs = append(roomIDs, b.RoomID)
		}
	}

	participants, err := s.participants.GetByIDs(ctx, participantIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.GetByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.BookingView{
			Booking:     b,
			Participant: participants[b.ParticipantID],
			Room:        rooms[b.RoomID],
		})
	}
	return out, nil
}
