package actions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/storage/debt"
)

func makeDebt(amount, paid string) *debt.Debt {
	return &debt.Debt{
		Amount:     decimal.RequireFromString(amount),
		AmountPaid: decimal.RequireFromString(paid),
		Status:     debt.StatusFor(decimal.RequireFromString(amount), decimal.RequireFromString(paid)),
	}
}

func TestSettlementOutcome_PartialPayment(t *testing.T) {
	d := makeDebt("500", "0")

	newPaid, newStatus, err := settlementOutcome(d, decimal.RequireFromString("200"))

	assert.NoError(t, err)
	assert.True(t, newPaid.Equal(decimal.RequireFromString("200")))
	assert.Equal(t, debt.StatusPartiallySettled, newStatus)
}

func TestSettlementOutcome_ExactRemaining(t *testing.T) {
	d := makeDebt("500", "200")

	newPaid, newStatus, err := settlementOutcome(d, decimal.RequireFromString("300"))

	assert.NoError(t, err)
	assert.True(t, newPaid.Equal(decimal.RequireFromString("500")))
	assert.Equal(t, debt.StatusSettled, newStatus)
}

func TestSettlementOutcome_ExceedsRemaining(t *testing.T) {
	d := makeDebt("500", "200")

	_, _, err := settlementOutcome(d, decimal.RequireFromString("300.01"))

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "amount exceeds remaining debt", err.Error())
}

func TestSettlementOutcome_SettledDebtRejectsAnyPayment(t *testing.T) {
	d := makeDebt("500", "500")

	_, _, err := settlementOutcome(d, decimal.RequireFromString("0.01"))

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSettlementOutcome_SequentialPayments(t *testing.T) {
	// A 500 loan paid back in 200 + 300 ends settled with nothing remaining.
	d := makeDebt("500", "0")

	paid, status, err := settlementOutcome(d, decimal.RequireFromString("200"))
	assert.NoError(t, err)
	assert.Equal(t, debt.StatusPartiallySettled, status)

	d.AmountPaid = paid
	d.Status = status

	paid, status, err = settlementOutcome(d, decimal.RequireFromString("300"))
	assert.NoError(t, err)
	assert.Equal(t, debt.StatusSettled, status)

	d.AmountPaid = paid
	assert.True(t, d.RemainingAmount().IsZero())
}
