package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// UpdateTransactionBody is the request body for patching a transaction.
// Absent fields are left untouched.
type UpdateTransactionBody struct {
	Title       *string `json:"title,omitempty" doc:"Transaction title"`
	Amount      *string `json:"amount,omitempty" doc:"Decimal amount"`
	Type        *string `json:"type,omitempty" doc:"income or expense"`
	Category    *string `json:"category,omitempty" doc:"Category label"`
	Description *string `json:"description,omitempty" doc:"Free-text description"`
	Date        *string `json:"date,omitempty" format:"date-time" doc:"RFC3339 transaction date"`
}

// UpdateTransactionInput is the Huma input for patching a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for patching a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionUpdater is the interface for patching transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id, caller uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /v1/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Patches a transaction's fields.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionPatch, error) {
	patch := service.TransactionPatch{
		Title:       input.Body.Title,
		Category:    input.Body.Category,
		Description: input.Body.Description,
	}

	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return service.TransactionPatch{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		patch.Amount = &amount
	}
	if input.Body.Type != nil {
		transactionType := storageTransactionType(*input.Body.Type)
		patch.Type = &transactionType
	}
	if input.Body.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *input.Body.Date)
		if err != nil {
			return service.TransactionPatch{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
		patch.Date = &parsed
	}
	return patch, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	patch, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.TransactionService.UpdateTransaction(ctx, id, owner, patch)
	if err != nil {
		return nil, httperr.FromService(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Body: transactionToAPI(updated)}, nil
}
