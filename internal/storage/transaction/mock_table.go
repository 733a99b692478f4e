package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

var _ ITransactionsTable = (*MockITransactionsTable)(nil)

// MockITransactionsTable is a testify mock of ITransactionsTable for service
// tests.
type MockITransactionsTable struct {
	mock.Mock
}

func (m *MockITransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transaction), args.Error(1)
}

func (m *MockITransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockITransactionsTable) List(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	args := m.Called(ctx, owner, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Transaction), args.Error(1)
}

func (m *MockITransactionsTable) Count(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) (int, error) {
	args := m.Called(ctx, owner, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockITransactionsTable) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockITransactionsTable) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockITransactionsTable) StatsByType(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*TypeStats, error) {
	args := m.Called(ctx, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TypeStats), args.Error(1)
}

func (m *MockITransactionsTable) StatsByCategory(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*CategoryStats, error) {
	args := m.Called(ctx, owner, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CategoryStats), args.Error(1)
}
