package service

import (
	"context"
	"time"

	"github.com/ledgerline/finance-server/internal/operator/actions"
	"github.com/ledgerline/finance-server/internal/storage"
)

// settlementProcessor runs an action inside a single database transaction.
// The operator delegator satisfies it.
type settlementProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Debt        *DebtService
	Auth        *AuthService
}

// NewService creates a new Service with the given storage and write operator.
func NewService(store *storage.Storage, op settlementProcessor, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		Transaction: NewTransactionService(store),
		Debt:        NewDebtService(store, op),
		Auth:        NewAuthService(store, jwtSecret, tokenTTL),
	}
}
