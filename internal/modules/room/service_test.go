package room

import (
	"context"
	"errors"
	"testing"

	"meetingroom/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 7
	}
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func TestService_CreateRoom(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s := NewService(repo)

	r, err := s.CreateRoom(context.Background(), " Everest ", 0, 12)

	require.NoError(t, err)
	assert.Equal(t, int64(7), r.ID)
	assert.Equal(t, "Everest", r.Name)
	assert.Equal(t, 0, r.Floor)
	assert.Equal(t, 12, r.Capacity)
}

func TestService_CreateRoom_Validation(t *testing.T) {
	tests := []struct {
		name     string
		roomName string
		capacity int
	}{
		{"blank name", "  ", 4},
		{"zero capacity", "Everest", 0},
		{"negative capacity", "Everest", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			s := NewService(repo)

			_, err := s.CreateRoom(context.Background(), tt.roomName, 1, tt.capacity)

			assert.ErrorIs(t, err, ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateRoom_StoreFailure(t *testing.T) {
	storeErr := errors.New("database is locked")
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(storeErr)

	_, err := NewService(repo).CreateRoom(context.Background(), "Everest", 1, 4)

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestService_ListRooms(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]domain.Room{{ID: 1}, {ID: 2}}, nil)

	rooms, err := NewService(repo).ListRooms(context.Background())

	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}
