package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/logging"
	"github.com/ledgerline/finance-server/internal/service"
)

// ListDebtsInput is the Huma input for listing debts.
type ListDebtsInput struct {
	Type   string `query:"type" doc:"Filter by debt type (lent or borrowed)"`
	Status string `query:"status" doc:"Filter by status (pending, partially_settled, settled)"`
}

// ListDebtsResponseBody is the response body for listing debts.
type ListDebtsResponseBody struct {
	Debts []Debt `json:"debts" doc:"Owner's debts, newest created first"`
}

// ListDebtsOutput is the Huma output for listing debts.
type ListDebtsOutput struct {
	Body ListDebtsResponseBody
}

// debtLister is the interface for listing debts.
type debtLister interface {
	ListDebts(ctx context.Context, owner uuid.UUID, filter service.DebtFilter) ([]*service.Debt, error)
}

// ListDebtsHandler handles GET /v1/debts.
type ListDebtsHandler struct {
	DebtService debtLister
}

// NewListDebtsHandler creates a new ListDebtsHandler.
func NewListDebtsHandler(svc debtLister) *ListDebtsHandler {
	return &ListDebtsHandler{DebtService: svc}
}

// Register registers the list debts endpoint with the Huma API.
func (h *ListDebtsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-debts",
		Method:      http.MethodGet,
		Path:        "/v1/debts",
		Summary:     "List debts",
		Description: "Returns the caller's debts, optionally filtered by type and status.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func (h *ListDebtsHandler) handle(ctx context.Context, input *ListDebtsInput) (*ListDebtsOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	logData := logging.GetLogData(ctx)
	stopTiming := logData.AddTiming("listDebtsMs")
	debts, err := h.DebtService.ListDebts(ctx, owner, service.DebtFilter{
		Type:   input.Type,
		Status: input.Status,
	})
	stopTiming()
	if err != nil {
		return nil, httperr.FromService(err, "failed to list debts")
	}
	logData.AddData("debtCount", len(debts))

	resp := ListDebtsResponseBody{Debts: make([]Debt, len(debts))}
	for i, d := range debts {
		resp.Debts[i] = debtToAPI(d)
	}
	return &ListDebtsOutput{Body: resp}, nil
}
