package user

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

var _ IUsersTable = (*MockIUsersTable)(nil)

// MockIUsersTable is a testify mock of IUsersTable for service tests.
type MockIUsersTable struct {
	mock.Mock
}

func (m *MockIUsersTable) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockIUsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockIUsersTable) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}
