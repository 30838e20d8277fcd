package participant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meetingroom/internal/domain"
	"meetingroom/internal/pkg/validator"
	"meetingroom/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
}

type Service struct {
	participants Repository
}

func NewService(participants Repository) *Service {
	return &Service{participants: participants}
}

func (s *Service) CreateParticipant(ctx context.Context, name string) (*domain.Participant, error) {
	p := &domain.Participant{Name: strings.TrimSpace(name)}
	if errs := validator.Validate(p); len(errs) > 0 {
		return nil, ErrValidation
	}

	if err := s.participants.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *Service) GetParticipant(ctx context.Context, id int64) (*domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}
