package storage

import (
	"database/sql"

	"github.com/ledgerline/finance-server/internal/storage/debt"
)

// Writer bundles the per-entity transactional writers over one database
// transaction. Operator actions perform against it and the operator commits
// or rolls back as a unit.
type Writer struct {
	tx   *sql.Tx
	Debt *debt.Writer
}

func NewWriter(tx *sql.Tx) *Writer {
	return &Writer{
		tx:   tx,
		Debt: debt.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}
