package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// SettleDebtBody is the request body for applying a settlement payment.
type SettleDebtBody struct {
	Amount string `json:"amount" required:"true" doc:"Decimal payment amount, must not exceed the remaining debt"`
	Note   string `json:"note,omitempty" doc:"Free-text note stored with the payment"`
}

// SettleDebtInput is the Huma input for applying a settlement payment.
type SettleDebtInput struct {
	ID   string `path:"id" format:"uuid" doc:"Debt UUID"`
	Body SettleDebtBody
}

// SettleDebtOutput is the Huma output for applying a settlement payment.
type SettleDebtOutput struct {
	Body Debt
}

// settlementApplier is the interface for applying settlement payments.
type settlementApplier interface {
	ApplySettlement(ctx context.Context, id, caller uuid.UUID, amount decimal.Decimal, note string) (*service.Debt, error)
}

// SettleDebtHandler handles POST /v1/debts/{id}/settle.
type SettleDebtHandler struct {
	DebtService settlementApplier
}

// NewSettleDebtHandler creates a new SettleDebtHandler.
func NewSettleDebtHandler(svc settlementApplier) *SettleDebtHandler {
	return &SettleDebtHandler{DebtService: svc}
}

// Register registers the settle debt endpoint with the Huma API.
func (h *SettleDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "settle-debt",
		Method:      http.MethodPost,
		Path:        "/v1/debts/{id}/settle",
		Summary:     "Apply settlement",
		Description: "Records a payment against the debt's principal and rederives its status.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func (h *SettleDebtHandler) handle(ctx context.Context, input *SettleDebtInput) (*SettleDebtOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid debt id", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	updated, err := h.DebtService.ApplySettlement(ctx, id, owner, amount, input.Body.Note)
	if err != nil {
		return nil, httperr.FromService(err, "failed to apply settlement")
	}

	return &SettleDebtOutput{Body: debtToAPI(updated)}, nil
}
