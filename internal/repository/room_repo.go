package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetingroom/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:room_name;size:100;not null"`
	Floor     int       `gorm:"column:floor;not null"`
	Capacity  int       `gorm:"column:capacity;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:        m.ID,
		Name:      m.Name,
		Floor:     m.Floor,
		Capacity:  m.Capacity,
		CreatedAt: m.CreatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := roomModel{
		Name:     room.Name,
		Floor:    room.Floor,
		Capacity: room.Capacity,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", id, err)
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Room, error) {
	out := make(map[int64]*domain.Room, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []roomModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}
	for _, m := range rows {
		out[m.ID] = toDomainRoom(m)
	}
	return out, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rows []roomModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}
