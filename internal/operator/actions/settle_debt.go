package actions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/debt"
)

// SettleDebt applies one settlement payment against a debt. The whole
// read-modify-write runs on the row lock FindByIDForUpdate takes, so two
// settlements racing on the same debt can never both pass the ceiling check
// against the same remaining balance.
type SettleDebt struct {
	DebtID uuid.UUID
	Owner  uuid.UUID
	Amount decimal.Decimal
	Note   string

	// Result is the updated debt, set on success.
	Result *debt.Debt
}

func (a *SettleDebt) Perform(ctx context.Context, writer *storage.Writer) error {
	locked, err := writer.Debt.FindByIDForUpdate(ctx, a.DebtID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("debt")
	}
	if err != nil {
		return apperrors.Store(err)
	}

	if locked.UserID != a.Owner {
		return apperrors.Unauthorized("user not authorized")
	}

	newPaid, newStatus, err := settlementOutcome(locked, a.Amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := writer.Debt.AddSettlement(ctx, locked.ID, a.Amount, a.Note, now); err != nil {
		return apperrors.Store(err)
	}

	if err := writer.Debt.SetSettlementProgress(ctx, locked.ID, newPaid, newStatus); err != nil {
		return apperrors.Store(err)
	}

	updated, err := writer.Debt.FindByID(ctx, locked.ID)
	if err != nil {
		return apperrors.Store(err)
	}

	a.Result = updated
	return nil
}

// settlementOutcome computes the post-settlement balance and status, or
// rejects an amount above the remaining debt.
func settlementOutcome(d *debt.Debt, amount decimal.Decimal) (decimal.Decimal, debt.Status, error) {
	if amount.GreaterThan(d.RemainingAmount()) {
		return decimal.Decimal{}, "", apperrors.Validation("amount exceeds remaining debt")
	}

	newPaid := d.AmountPaid.Add(amount)
	return newPaid, debt.StatusFor(d.Amount, newPaid), nil
}
