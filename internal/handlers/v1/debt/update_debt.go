package debt

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// UpdateDebtBody is the request body for patching a debt. Only non-derived
// fields are accepted; balance and status move through settlements only.
type UpdateDebtBody struct {
	Title         *string `json:"title,omitempty" doc:"Debt title"`
	PersonName    *string `json:"personName,omitempty" doc:"Counterparty name"`
	PersonContact *string `json:"personContact,omitempty" doc:"Counterparty contact"`
	Description   *string `json:"description,omitempty" doc:"Free-text description"`
	DueDate       *string `json:"dueDate,omitempty" format:"date-time" doc:"RFC3339 due date"`
}

// UpdateDebtInput is the Huma input for patching a debt.
type UpdateDebtInput struct {
	ID   string `path:"id" format:"uuid" doc:"Debt UUID"`
	Body UpdateDebtBody
}

// UpdateDebtOutput is the Huma output for patching a debt.
type UpdateDebtOutput struct {
	Body Debt
}

// debtUpdater is the interface for patching debts.
type debtUpdater interface {
	UpdateDebt(ctx context.Context, id, caller uuid.UUID, patch service.DebtPatch) (*service.Debt, error)
}

// UpdateDebtHandler handles PUT /v1/debts/{id}.
type UpdateDebtHandler struct {
	DebtService debtUpdater
}

// NewUpdateDebtHandler creates a new UpdateDebtHandler.
func NewUpdateDebtHandler(svc debtUpdater) *UpdateDebtHandler {
	return &UpdateDebtHandler{DebtService: svc}
}

// Register registers the update debt endpoint with the Huma API.
func (h *UpdateDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-debt",
		Method:      http.MethodPut,
		Path:        "/v1/debts/{id}",
		Summary:     "Update debt",
		Description: "Patches a debt's descriptive fields.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func parseUpdateDebtInput(input *UpdateDebtInput) (service.DebtPatch, error) {
	patch := service.DebtPatch{
		Title:         input.Body.Title,
		PersonName:    input.Body.PersonName,
		PersonContact: input.Body.PersonContact,
		Description:   input.Body.Description,
	}

	if input.Body.DueDate != nil {
		parsed, err := time.Parse(time.RFC3339, *input.Body.DueDate)
		if err != nil {
			return service.DebtPatch{}, huma.NewError(http.StatusBadRequest, "invalid dueDate", err)
		}
		patch.DueDate = &parsed
	}
	return patch, nil
}

func (h *UpdateDebtHandler) handle(ctx context.Context, input *UpdateDebtInput) (*UpdateDebtOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid debt id", err)
	}

	patch, err := parseUpdateDebtInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.DebtService.UpdateDebt(ctx, id, owner, patch)
	if err != nil {
		return nil, httperr.FromService(err, "failed to update debt")
	}

	return &UpdateDebtOutput{Body: debtToAPI(updated)}, nil
}
