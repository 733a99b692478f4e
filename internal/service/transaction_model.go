package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Type        transaction.Type
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionCreate is the input for recording a new transaction.
type TransactionCreate struct {
	Owner       uuid.UUID
	Title       string
	Amount      decimal.Decimal
	Type        transaction.Type
	Category    string
	Description string
	Date        time.Time // defaults to now if zero
}

// TransactionPatch updates transaction fields. Nil fields stay untouched.
type TransactionPatch struct {
	Title       *string
	Amount      *decimal.Decimal
	Type        *transaction.Type
	Category    *string
	Description *string
	Date        *time.Time
}

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionPage is one page of an owner's transactions with the totals the
// client needs to render offset pagination.
type TransactionPage struct {
	Transactions []*Transaction
	Total        int
	CurrentPage  int
	TotalPages   int
}

// TransactionTypeStats is the current-month aggregate for one type.
type TransactionTypeStats struct {
	Type  transaction.Type
	Total decimal.Decimal
	Count int
}

// TransactionCategoryStats is the current-month aggregate for one
// (type, category) pair.
type TransactionCategoryStats struct {
	Type     transaction.Type
	Category string
	Total    decimal.Decimal
	Count    int
}

// TransactionStats bundles both current-month views. Each view is a full
// aggregation over the same window; no record lands in more than one group
// per view.
type TransactionStats struct {
	ByType            []*TransactionTypeStats
	ByTypeAndCategory []*TransactionCategoryStats
}

func transactionFromStorage(row *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Amount:      row.Amount,
		Type:        row.Type,
		Category:    row.Category,
		Description: row.Description,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
