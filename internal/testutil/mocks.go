package testutil

import (
	"context"
	"time"

	"cardbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockWordRepository is a mock for WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) FindVisibleWord(ctx context.Context, userID int64, english string) (*domain.Word, error) {
	args := m.Called(ctx, userID, english)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) AddUserWord(ctx context.Context, userID int64, english, russian string) (*domain.Word, error) {
	args := m.Called(ctx, userID, english, russian)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) AddGlobalWord(ctx context.Context, english, russian string) (bool, error) {
	args := m.Called(ctx, english, russian)
	return args.Bool(0), args.Error(1)
}

func (m *MockWordRepository) DeleteUserWord(ctx context.Context, userID int64, english string) (bool, error) {
	args := m.Called(ctx, userID, english)
	return args.Bool(0), args.Error(1)
}

func (m *MockWordRepository) SampleWords(ctx context.Context, userID int64, count int) ([]domain.Word, error) {
	args := m.Called(ctx, userID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Word), args.Error(1)
}

// MockIdleEvicter is a mock for the session evicter used by cleanup
type MockIdleEvicter struct {
	mock.Mock
}

func (m *MockIdleEvicter) EvictIdle(ttl time.Duration) int {
	args := m.Called(ttl)
	return args.Int(0)
}

func (m *MockIdleEvicter) Len() int {
	args := m.Called()
	return args.Int(0)
}
