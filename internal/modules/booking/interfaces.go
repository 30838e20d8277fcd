package booking

import (
	"context"
	"time"

	"meetingroom/internal/domain"
)

// BookingRepository is the booking half of the entity store.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
	ListByRoomBetween(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error)
}

type ParticipantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Participant, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Room, error)
}

// RoomLocker serializes admission per room. The returned func releases the lock.
type RoomLocker interface {
	Lock(ctx context.Context, roomID int64) (unlock func(), err error)
}

// DayCache caches the bookings of one room on one calendar day.
// Get reports ok=false on a miss.
type DayCache interface {
	Get(ctx context.Context, roomID int64, day time.Time) (bookings []domain.Booking, ok bool, err error)
	Set(ctx context.Context, roomID int64, day time.Time, bookings []domain.Booking) error
	Invalidate(ctx context.Context, roomID int64, day time.Time) error
}

// Notifier is told about every admitted booking.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
}
