package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type of a money movement.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// ValidType reports whether t is a known transaction type.
func ValidType(t Type) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a transaction record.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID      uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Description string
	Date        time.Time // defaults to now if zero
}

// TransactionPatch updates transaction fields. Nil fields stay untouched.
type TransactionPatch struct {
	Title       *string
	Amount      *decimal.Decimal
	Type        *Type
	Category    *string
	Description *string
	Date        *time.Time
}

// TransactionFilter specifies filters and the page window for listing.
type TransactionFilter struct {
	Type      *Type
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TypeStats is the per-type aggregate over a date window.
type TypeStats struct {
	Type  Type
	Total decimal.Decimal
	Count int
}

// CategoryStats is the per-(type, category) aggregate over a date window.
type CategoryStats struct {
	Type     Type
	Category string
	Total    decimal.Decimal
	Count    int
}

// ITransactionsTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionsTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	Count(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	StatsByType(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*TypeStats, error)
	StatsByCategory(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*CategoryStats, error)
}
