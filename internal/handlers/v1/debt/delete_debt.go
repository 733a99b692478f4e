package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
)

// DeleteDebtInput is the Huma input for deleting a debt.
type DeleteDebtInput struct {
	ID string `path:"id" format:"uuid" doc:"Debt UUID"`
}

// DeleteDebtResponse is the response body for deleting a debt.
type DeleteDebtResponse struct {
	ID string `json:"id" doc:"Deleted debt UUID"`
}

// DeleteDebtOutput is the Huma output for deleting a debt.
type DeleteDebtOutput struct {
	Body DeleteDebtResponse
}

// debtDeleter is the interface for deleting debts.
type debtDeleter interface {
	DeleteDebt(ctx context.Context, id, caller uuid.UUID) error
}

// DeleteDebtHandler handles DELETE /v1/debts/{id}.
type DeleteDebtHandler struct {
	DebtService debtDeleter
}

// NewDeleteDebtHandler creates a new DeleteDebtHandler.
func NewDeleteDebtHandler(svc debtDeleter) *DeleteDebtHandler {
	return &DeleteDebtHandler{DebtService: svc}
}

// Register registers the delete debt endpoint with the Huma API.
func (h *DeleteDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-debt",
		Method:      http.MethodDelete,
		Path:        "/v1/debts/{id}",
		Summary:     "Delete debt",
		Description: "Deletes a debt and its settlement history.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func (h *DeleteDebtHandler) handle(ctx context.Context, input *DeleteDebtInput) (*DeleteDebtOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid debt id", err)
	}

	if err := h.DebtService.DeleteDebt(ctx, id, owner); err != nil {
		return nil, httperr.FromService(err, "failed to delete debt")
	}

	return &DeleteDebtOutput{Body: DeleteDebtResponse{ID: id.String()}}, nil
}
