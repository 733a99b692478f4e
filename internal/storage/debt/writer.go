package debt

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Writer runs debt mutations inside a database transaction. The settlement
// path depends on the row lock FindByIDForUpdate takes: concurrent
// settlements against the same debt serialize on it, so the overpayment
// check never runs against a stale balance.
type Writer struct {
	tx *sql.Tx
	Reader
}

func NewWriter(tx *sql.Tx) *Writer {
	return &Writer{
		tx:     tx,
		Reader: Reader{exec: tx},
	}
}

// FindByIDForUpdate locks the debt row for the rest of the transaction.
// History is not loaded; settlement only needs the balance columns.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Debt, error) {
	row := w.tx.QueryRowContext(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE id = $1
		FOR UPDATE
	`, id)
	return scanDebt(row)
}

// AddSettlement appends one entry to the debt's settlement history.
func (w *Writer) AddSettlement(ctx context.Context, debtID uuid.UUID, amount decimal.Decimal, note string, date time.Time) (*Settlement, error) {
	entry := &Settlement{
		DebtID: debtID,
		Amount: amount,
		Note:   note,
		Date:   date,
	}
	err := w.tx.QueryRowContext(ctx, `
		INSERT INTO debt_settlements (debt_id, amount, note, settled_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id
	`, debtID, amount, note, date).Scan(&entry.ID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SetSettlementProgress writes the new paid balance and its derived status.
func (w *Writer) SetSettlementProgress(ctx context.Context, id uuid.UUID, amountPaid decimal.Decimal, status Status) error {
	result, err := w.tx.ExecContext(ctx, `
		UPDATE debts
		SET amount_paid = $2, status = $3, updated_at = now()
		WHERE id = $1
	`, id, amountPaid, status)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
