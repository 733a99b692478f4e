package debt

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

var _ IDebtsTable = (*MockIDebtsTable)(nil)

// MockIDebtsTable is a testify mock of IDebtsTable for service tests.
type MockIDebtsTable struct {
	mock.Mock
}

func (m *MockIDebtsTable) FindByID(ctx context.Context, id uuid.UUID) (*Debt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Debt), args.Error(1)
}

func (m *MockIDebtsTable) Insert(ctx context.Context, create *DebtCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockIDebtsTable) List(ctx context.Context, owner uuid.UUID, filter *DebtFilter) ([]*Debt, error) {
	args := m.Called(ctx, owner, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Debt), args.Error(1)
}

func (m *MockIDebtsTable) Update(ctx context.Context, id uuid.UUID, patch *DebtPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockIDebtsTable) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIDebtsTable) Stats(ctx context.Context, owner uuid.UUID) ([]*TypeStats, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TypeStats), args.Error(1)
}
