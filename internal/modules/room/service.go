package room

import (
	"context"
	"fmt"
	"strings"

	"meetingroom/internal/domain"
	"meetingroom/internal/pkg/validator"
)

type Repository interface {
	Create(ctx context.Context, room *domain.Room) error
	List(ctx context.Context) ([]domain.Room, error)
}

type Service struct {
	rooms Repository
}

func NewService(rooms Repository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) CreateRoom(ctx context.Context, name string, floor, capacity int) (*domain.Room, error) {
	r := &domain.Room{Name: strings.TrimSpace(name), Floor: floor, Capacity: capacity}
	if errs := validator.Validate(r); len(errs) > 0 {
		return nil, ErrValidation
	}

	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return r, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.rooms.List(ctx)
}
