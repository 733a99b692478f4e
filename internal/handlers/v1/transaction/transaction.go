package transaction

import (
	"time"

	"github.com/ledgerline/finance-server/internal/service"
	storagetransaction "github.com/ledgerline/finance-server/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	Title       string `json:"title" doc:"Transaction title"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	Type        string `json:"type" doc:"income or expense"`
	Category    string `json:"category" doc:"Category label"`
	Description string `json:"description,omitempty" doc:"Free-text description"`
	Date        string `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt   string `json:"updatedAt" doc:"RFC3339 last update time"`
}

func transactionToAPI(tx *service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Title:       tx.Title,
		Amount:      tx.Amount.String(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
}

// storageTransactionType converts a request string into the storage-layer
// transaction type. The service validates it.
func storageTransactionType(t string) storagetransaction.Type {
	return storagetransaction.Type(t)
}
