package debt

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// CreateDebtBody is the request body for recording a debt.
type CreateDebtBody struct {
	Title         string `json:"title" minLength:"1" doc:"Debt title"`
	Amount        string `json:"amount" required:"true" doc:"Decimal principal"`
	Type          string `json:"type" enum:"lent,borrowed" doc:"lent or borrowed"`
	PersonName    string `json:"personName" minLength:"1" doc:"Counterparty name"`
	PersonContact string `json:"personContact,omitempty" doc:"Counterparty contact"`
	Description   string `json:"description,omitempty" doc:"Free-text description"`
	DueDate       string `json:"dueDate,omitempty" format:"date-time" doc:"RFC3339 due date"`
}

// CreateDebtInput is the Huma input for recording a debt.
type CreateDebtInput struct {
	Body CreateDebtBody
}

// CreateDebtOutput is the Huma output for recording a debt.
type CreateDebtOutput struct {
	Body Debt
}

// debtRecorder is the interface for recording debts.
type debtRecorder interface {
	RecordDebt(ctx context.Context, create service.DebtCreate) (*service.Debt, error)
}

// CreateDebtHandler handles POST /v1/debts.
type CreateDebtHandler struct {
	DebtService debtRecorder
}

// NewCreateDebtHandler creates a new CreateDebtHandler.
func NewCreateDebtHandler(svc debtRecorder) *CreateDebtHandler {
	return &CreateDebtHandler{DebtService: svc}
}

// Register registers the create debt endpoint with the Huma API.
func (h *CreateDebtHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-debt",
		Method:        http.MethodPost,
		Path:          "/v1/debts",
		Summary:       "Record debt",
		Description:   "Records a new pending debt with nothing paid.",
		Tags:          []string{"Debts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateDebtInput(input *CreateDebtInput) (service.DebtCreate, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.DebtCreate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var dueDate *time.Time
	if input.Body.DueDate != "" {
		parsed, parseErr := time.Parse(time.RFC3339, input.Body.DueDate)
		if parseErr != nil {
			return service.DebtCreate{}, huma.NewError(http.StatusBadRequest, "invalid dueDate", parseErr)
		}
		dueDate = &parsed
	}

	return service.DebtCreate{
		Title:         input.Body.Title,
		Amount:        amount,
		Type:          storageDebtType(input.Body.Type),
		PersonName:    input.Body.PersonName,
		PersonContact: input.Body.PersonContact,
		Description:   input.Body.Description,
		DueDate:       dueDate,
	}, nil
}

func (h *CreateDebtHandler) handle(ctx context.Context, input *CreateDebtInput) (*CreateDebtOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	create, err := parseCreateDebtInput(input)
	if err != nil {
		return nil, err
	}
	create.Owner = owner

	created, err := h.DebtService.RecordDebt(ctx, create)
	if err != nil {
		return nil, httperr.FromService(err, "failed to record debt")
	}

	return &CreateDebtOutput{Body: debtToAPI(created)}, nil
}
