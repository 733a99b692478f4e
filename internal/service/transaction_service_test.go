package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/transaction"
)

func newTestTransactionService(t *testing.T) (*TransactionService, *transaction.MockITransactionsTable) {
	t.Helper()
	mockTable := new(transaction.MockITransactionsTable)
	store := &storage.Storage{Transactions: mockTable}
	return NewTransactionService(store), mockTable
}

func storedTransaction(owner uuid.UUID, amount string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.Must(uuid.NewV4()),
		UserID:   owner,
		Title:    "Groceries",
		Amount:   decimal.RequireFromString(amount),
		Type:     transaction.TypeExpense,
		Category: "food",
		Date:     date,
	}
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("42.50")

	mockTable.On("Insert", mock.Anything, mock.MatchedBy(func(c *transaction.TransactionCreate) bool {
		return c.UserID == owner &&
			c.Title == "Groceries" &&
			c.Amount.Equal(amount) &&
			c.Type == transaction.TypeExpense &&
			c.Category == "food"
	})).Return(txID, nil)

	stored := storedTransaction(owner, "42.50", time.Now())
	stored.ID = txID
	mockTable.On("FindByID", mock.Anything, txID).Return(stored, nil)

	created, err := svc.CreateTransaction(context.Background(), TransactionCreate{
		Owner:    owner,
		Title:    "Groceries",
		Amount:   amount,
		Type:     transaction.TypeExpense,
		Category: "food",
	})

	assert.NoError(t, err)
	assert.Equal(t, txID, created.ID)
	mockTable.AssertExpectations(t)
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _ := newTestTransactionService(t)
	owner := uuid.Must(uuid.NewV4())

	_, err := svc.CreateTransaction(context.Background(), TransactionCreate{
		Owner:    owner,
		Title:    "",
		Amount:   decimal.RequireFromString("5"),
		Type:     transaction.TypeExpense,
		Category: "food",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateTransaction(context.Background(), TransactionCreate{
		Owner:    owner,
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("5"),
		Type:     transaction.Type("transfer"),
		Category: "food",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateTransaction(context.Background(), TransactionCreate{
		Owner:    owner,
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("-5"),
		Type:     transaction.TypeExpense,
		Category: "food",
	})
	assert.True(t, apperrors.IsValidation(err))
}

// -- ListTransactions tests --

func TestListTransactions_DefaultsAndPageMath(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)
	owner := uuid.Must(uuid.NewV4())

	rows := []*transaction.Transaction{
		storedTransaction(owner, "5.00", time.Now()),
		storedTransaction(owner, "6.00", time.Now()),
	}

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 10 && f.Offset == 0
	})).Return(rows, nil)
	mockTable.On("Count", mock.Anything, owner, mock.Anything).Return(25, nil)

	page, err := svc.ListTransactions(context.Background(), owner, TransactionFilter{}, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, page.Transactions, 2)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	mockTable.AssertExpectations(t)
}

func TestListTransactions_OffsetForLaterPage(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)
	owner := uuid.Must(uuid.NewV4())

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 5 && f.Offset == 10
	})).Return([]*transaction.Transaction{}, nil)
	mockTable.On("Count", mock.Anything, owner, mock.Anything).Return(11, nil)

	page, err := svc.ListTransactions(context.Background(), owner, TransactionFilter{}, 3, 5)

	assert.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	mockTable.AssertExpectations(t)
}

func TestListTransactions_BadTypeFilter(t *testing.T) {
	svc, _ := newTestTransactionService(t)

	_, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), TransactionFilter{Type: "transfer"}, 1, 10)

	assert.True(t, apperrors.IsValidation(err))
}

// -- UpdateTransaction / DeleteTransaction ownership tests --

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)
	txID := uuid.Must(uuid.NewV4())

	mockTable.On("FindByID", mock.Anything, txID).Return(nil, sql.ErrNoRows)

	title := "Dinner"
	_, err := svc.UpdateTransaction(context.Background(), txID, uuid.Must(uuid.NewV4()), TransactionPatch{Title: &title})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateTransaction_WrongOwner(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	stored := storedTransaction(owner, "10.00", time.Now())
	mockTable.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	title := "Dinner"
	_, err := svc.UpdateTransaction(context.Background(), stored.ID, uuid.Must(uuid.NewV4()), TransactionPatch{Title: &title})

	assert.True(t, apperrors.IsUnauthorized(err))
	mockTable.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTransaction_Success(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	stored := storedTransaction(owner, "10.00", time.Now())
	mockTable.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	mockTable.On("Delete", mock.Anything, stored.ID).Return(nil)

	err := svc.DeleteTransaction(context.Background(), stored.ID, owner)

	assert.NoError(t, err)
	mockTable.AssertExpectations(t)
}

// -- TransactionStats tests --

func TestTransactionStats_UsesCurrentMonthWindow(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)
	owner := uuid.Must(uuid.NewV4())

	asOf := time.Date(2026, 1, 15, 18, 30, 0, 0, time.UTC)
	wantFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mockTable.On("StatsByType", mock.Anything, owner, wantFrom, wantTo).
		Return([]*transaction.TypeStats{
			{Type: transaction.TypeIncome, Total: decimal.RequireFromString("1000"), Count: 2},
			{Type: transaction.TypeExpense, Total: decimal.RequireFromString("400"), Count: 5},
		}, nil)
	mockTable.On("StatsByCategory", mock.Anything, owner, wantFrom, wantTo).
		Return([]*transaction.CategoryStats{
			{Type: transaction.TypeExpense, Category: "food", Total: decimal.RequireFromString("250"), Count: 3},
		}, nil)

	stats, err := svc.TransactionStats(context.Background(), owner, asOf)

	assert.NoError(t, err)
	assert.Len(t, stats.ByType, 2)
	assert.Len(t, stats.ByTypeAndCategory, 1)
	assert.Equal(t, "food", stats.ByTypeAndCategory[0].Category)
	mockTable.AssertExpectations(t)
}

func TestMonthWindow_Boundaries(t *testing.T) {
	from, to := monthWindow(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestMonthWindow_FirstInstant(t *testing.T) {
	from, to := monthWindow(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)
}
