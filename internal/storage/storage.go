package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/ledgerline/finance-server/internal/config"
	"github.com/ledgerline/finance-server/internal/storage/debt"
	"github.com/ledgerline/finance-server/internal/storage/transaction"
	"github.com/ledgerline/finance-server/internal/storage/user"
)

type Storage struct {
	DB           *sql.DB
	Users        user.IUsersTable
	Transactions transaction.ITransactionsTable
	Debts        debt.IDebtsTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, err
	}

	return &Storage{
		DB:           db,
		Users:        user.NewTable(db),
		Transactions: transaction.NewTable(db),
		Debts:        debt.NewTable(db),
	}, nil
}

// Write begins a database transaction and returns a Writer bound to it.
// The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
