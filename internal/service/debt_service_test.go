package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/operator/actions"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/debt"
)

// fakeProcessor stands in for the operator. It hands the action to run so
// tests can simulate what a worker's transaction would have produced.
type fakeProcessor struct {
	run func(action actions.IAction) error
}

func (f *fakeProcessor) Process(_ context.Context, action actions.IAction) error {
	return f.run(action)
}

func newTestDebtService(t *testing.T, op settlementProcessor) (*DebtService, *debt.MockIDebtsTable) {
	t.Helper()
	mockTable := new(debt.MockIDebtsTable)
	store := &storage.Storage{Debts: mockTable}
	return NewDebtService(store, op), mockTable
}

func storedDebt(owner uuid.UUID, amount, paid string) *debt.Debt {
	amt := decimal.RequireFromString(amount)
	pd := decimal.RequireFromString(paid)
	return &debt.Debt{
		ID:         uuid.Must(uuid.NewV4()),
		UserID:     owner,
		Title:      "Loan",
		Amount:     amt,
		Type:       debt.TypeLent,
		PersonName: "Sam",
		Status:     debt.StatusFor(amt, pd),
		AmountPaid: pd,
	}
}

// -- RecordDebt tests --

func TestRecordDebt_Success(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)

	owner := uuid.Must(uuid.NewV4())
	debtID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("500")

	mockTable.On("Insert", mock.Anything, mock.MatchedBy(func(c *debt.DebtCreate) bool {
		return c.UserID == owner &&
			c.Title == "Loan to Sam" &&
			c.Amount.Equal(amount) &&
			c.Type == debt.TypeLent &&
			c.PersonName == "Sam"
	})).Return(debtID, nil)

	stored := storedDebt(owner, "500", "0")
	stored.ID = debtID
	stored.Title = "Loan to Sam"
	mockTable.On("FindByID", mock.Anything, debtID).Return(stored, nil)

	created, err := svc.RecordDebt(context.Background(), DebtCreate{
		Owner:      owner,
		Title:      "Loan to Sam",
		Amount:     amount,
		Type:       debt.TypeLent,
		PersonName: "Sam",
	})

	assert.NoError(t, err)
	assert.Equal(t, debtID, created.ID)
	assert.Equal(t, debt.StatusPending, created.Status)
	assert.True(t, created.AmountPaid.IsZero())
	assert.True(t, created.RemainingAmount.Equal(amount))
	assert.Empty(t, created.SettlementHistory)
	mockTable.AssertExpectations(t)
}

func TestRecordDebt_MissingTitle(t *testing.T) {
	svc, _ := newTestDebtService(t, nil)

	_, err := svc.RecordDebt(context.Background(), DebtCreate{
		Owner:      uuid.Must(uuid.NewV4()),
		Title:      "   ",
		Amount:     decimal.RequireFromString("10"),
		Type:       debt.TypeLent,
		PersonName: "Sam",
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestRecordDebt_BadType(t *testing.T) {
	svc, _ := newTestDebtService(t, nil)

	_, err := svc.RecordDebt(context.Background(), DebtCreate{
		Owner:      uuid.Must(uuid.NewV4()),
		Title:      "Loan",
		Amount:     decimal.RequireFromString("10"),
		Type:       debt.Type("loaned"),
		PersonName: "Sam",
	})

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "type must be lent or borrowed", err.Error())
}

func TestRecordDebt_NegativeAmount(t *testing.T) {
	svc, _ := newTestDebtService(t, nil)

	_, err := svc.RecordDebt(context.Background(), DebtCreate{
		Owner:      uuid.Must(uuid.NewV4()),
		Title:      "Loan",
		Amount:     decimal.RequireFromString("-1"),
		Type:       debt.TypeBorrowed,
		PersonName: "Sam",
	})

	assert.True(t, apperrors.IsValidation(err))
}

// -- ListDebts tests --

func TestListDebts_FilterValidation(t *testing.T) {
	svc, _ := newTestDebtService(t, nil)
	owner := uuid.Must(uuid.NewV4())

	_, err := svc.ListDebts(context.Background(), owner, DebtFilter{Type: "loaned"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ListDebts(context.Background(), owner, DebtFilter{Status: "paid"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestListDebts_PassesFilterThrough(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)
	owner := uuid.Must(uuid.NewV4())

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *debt.DebtFilter) bool {
		return f.Type != nil && *f.Type == debt.TypeLent &&
			f.Status != nil && *f.Status == debt.StatusPending
	})).Return([]*debt.Debt{storedDebt(owner, "100", "0")}, nil)

	result, err := svc.ListDebts(context.Background(), owner, DebtFilter{
		Type:   "lent",
		Status: "pending",
	})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	mockTable.AssertExpectations(t)
}

// -- UpdateDebt / DeleteDebt ownership tests --

func TestUpdateDebt_NotFound(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)
	debtID := uuid.Must(uuid.NewV4())

	mockTable.On("FindByID", mock.Anything, debtID).Return(nil, sql.ErrNoRows)

	title := "New title"
	_, err := svc.UpdateDebt(context.Background(), debtID, uuid.Must(uuid.NewV4()), DebtPatch{Title: &title})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateDebt_WrongOwner(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)

	owner := uuid.Must(uuid.NewV4())
	stored := storedDebt(owner, "100", "0")
	mockTable.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	title := "New title"
	_, err := svc.UpdateDebt(context.Background(), stored.ID, uuid.Must(uuid.NewV4()), DebtPatch{Title: &title})

	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestDeleteDebt_Success(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)

	owner := uuid.Must(uuid.NewV4())
	stored := storedDebt(owner, "100", "0")
	mockTable.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	mockTable.On("Delete", mock.Anything, stored.ID).Return(nil)

	err := svc.DeleteDebt(context.Background(), stored.ID, owner)

	assert.NoError(t, err)
	mockTable.AssertExpectations(t)
}

func TestDeleteDebt_WrongOwner(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)

	owner := uuid.Must(uuid.NewV4())
	stored := storedDebt(owner, "100", "0")
	mockTable.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	err := svc.DeleteDebt(context.Background(), stored.ID, uuid.Must(uuid.NewV4()))

	assert.True(t, apperrors.IsUnauthorized(err))
	mockTable.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// -- ApplySettlement tests --

func TestApplySettlement_NonPositiveAmount(t *testing.T) {
	svc, _ := newTestDebtService(t, &fakeProcessor{run: func(actions.IAction) error {
		t.Fatal("operator must not run for invalid amounts")
		return nil
	}})

	_, err := svc.ApplySettlement(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), decimal.Zero, "")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "please add a valid amount", err.Error())

	_, err = svc.ApplySettlement(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), decimal.RequireFromString("-5"), "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplySettlement_ReturnsOperatorResult(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	debtID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("200")

	processor := &fakeProcessor{run: func(action actions.IAction) error {
		settle, ok := action.(*actions.SettleDebt)
		assert.True(t, ok)
		assert.Equal(t, debtID, settle.DebtID)
		assert.Equal(t, owner, settle.Owner)
		assert.True(t, settle.Amount.Equal(amount))
		assert.Equal(t, "first payment", settle.Note)

		result := storedDebt(owner, "500", "200")
		result.ID = debtID
		settle.Result = result
		return nil
	}}
	svc, _ := newTestDebtService(t, processor)

	updated, err := svc.ApplySettlement(context.Background(), debtID, owner, amount, "  first payment  ")

	assert.NoError(t, err)
	assert.Equal(t, debt.StatusPartiallySettled, updated.Status)
	assert.True(t, updated.AmountPaid.Equal(amount))
	assert.True(t, updated.RemainingAmount.Equal(decimal.RequireFromString("300")))
}

func TestApplySettlement_OperatorErrorPassesThrough(t *testing.T) {
	processor := &fakeProcessor{run: func(actions.IAction) error {
		return apperrors.Validation("amount exceeds remaining debt")
	}}
	svc, _ := newTestDebtService(t, processor)

	_, err := svc.ApplySettlement(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), decimal.RequireFromString("600"), "")

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "amount exceeds remaining debt", err.Error())
}

// -- DebtStats tests --

func TestDebtStats_Success(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)
	owner := uuid.Must(uuid.NewV4())

	mockTable.On("Stats", mock.Anything, owner).Return([]*debt.TypeStats{
		{
			Type:         debt.TypeLent,
			TotalAmount:  decimal.RequireFromString("800"),
			TotalPaid:    decimal.RequireFromString("300"),
			Count:        2,
			PendingCount: 1,
			SettledCount: 0,
		},
	}, nil)

	stats, err := svc.DebtStats(context.Background(), owner)

	assert.NoError(t, err)
	assert.Len(t, stats, 1)
	assert.Equal(t, debt.TypeLent, stats[0].Type)
	assert.True(t, stats[0].TotalAmount.Equal(decimal.RequireFromString("800")))
	assert.Equal(t, 2, stats[0].Count)
}

func TestDebtStats_StorageError(t *testing.T) {
	svc, mockTable := newTestDebtService(t, nil)
	owner := uuid.Must(uuid.NewV4())

	mockTable.On("Stats", mock.Anything, owner).Return(nil, errors.New("connection refused"))

	_, err := svc.DebtStats(context.Background(), owner)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
}
