package participant

import (
	"context"
	"errors"
	"testing"

	"meetingroom/internal/domain"
	"meetingroom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *domain.Participant) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

func TestService_CreateParticipant(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Participant) bool {
		return p.Name == "Bob"
	})).Return(nil)
	s := NewService(repo)

	p, err := s.CreateParticipant(context.Background(), "  Bob ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Bob", p.Name)
	repo.AssertExpectations(t)
}

func TestService_CreateParticipant_Errors(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name    string
		input   string
		repoErr error
		want    error
	}{
		{name: "blank", input: "   ", want: ErrValidation},
		{name: "duplicate", input: "Bob", repoErr: repository.ErrDuplicateName, want: ErrDuplicateName},
		{name: "store failure", input: "Bob", repoErr: storeErr, want: storeErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.repoErr != nil {
				repo.On("Create", mock.Anything, mock.Anything).Return(tt.repoErr)
			}
			s := NewService(repo)

			p, err := s.CreateParticipant(context.Background(), tt.input)

			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_GetParticipant(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Participant{ID: 1, Name: "Bob"}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)
	s := NewService(repo)

	p, err := s.GetParticipant(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.Name)

	_, err = s.GetParticipant(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
