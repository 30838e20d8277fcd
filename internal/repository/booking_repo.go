package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetingroom/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ParticipantID int64     `gorm:"column:participant_id;not null;index"`
	RoomID        int64     `gorm:"column:room_id;not null;index:idx_bookings_room_start,priority:1"`
	StartTime     time.Time `gorm:"column:start_time;not null;index:idx_bookings_room_start,priority:2"`
	EndTime       time.Time `gorm:"column:end_time;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		RoomID:        m.RoomID,
		StartTime:     m.StartTime.UTC(),
		EndTime:       m.EndTime.UTC(),
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		ParticipantID: b.ParticipantID,
		RoomID:        b.RoomID,
		StartTime:     b.StartTime.UTC(),
		EndTime:       b.EndTime.UTC(),
		CreatedAt:     b.CreatedAt,
	}
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

// Create inserts b as a single statement and fills in its id and creation time.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return toDomainBooking(m), nil
}

// List returns every booking in insertion order.
func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return toDomainBookings(rows), nil
}

// ListByRoom returns all bookings for roomID ordered by start time.
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("start_time, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for room %d: %w", roomID, err)
	}
	return toDomainBookings(rows), nil
}

// ListByRoomBetween returns bookings for roomID whose start falls in [from, to),
// ordered by start time.
func (r *BookingRepository) ListByRoomBetween(ctx context.Context, roomID int64, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND start_time >= ? AND start_time < ?", roomID, from.UTC(), to.UTC()).
		Order("start_time, id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for room %d: %w", roomID, err)
	}
	return toDomainBookings(rows), nil
}
