package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/logging"
	"github.com/ledgerline/finance-server/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Type      string `query:"type" doc:"Filter by type, income or expense"`
	Category  string `query:"category" doc:"Filter by category"`
	StartDate string `query:"startDate" doc:"Only transactions dated on or after this RFC3339 time"`
	EndDate   string `query:"endDate" doc:"Only transactions dated on or before this RFC3339 time"`
	Page      int    `query:"page" doc:"Page number, starting at 1"`
	Limit     int    `query:"limit" doc:"Page size, defaults to 10"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"One page of transactions, newest date first"`
	Total        int           `json:"total" doc:"Total matching transactions"`
	CurrentPage  int           `json:"currentPage" doc:"Page number served"`
	TotalPages   int           `json:"totalPages" doc:"Total pages at this page size"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, owner uuid.UUID, filter service.TransactionFilter, page, limit int) (*service.TransactionPage, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Description: "Lists the caller's transactions, newest date first, with offset pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionFilter, error) {
	filter := service.TransactionFilter{
		Type:     input.Type,
		Category: input.Category,
	}

	if input.StartDate != "" {
		parsed, err := time.Parse(time.RFC3339, input.StartDate)
		if err != nil {
			return service.TransactionFilter{}, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		filter.StartDate = &parsed
	}
	if input.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, input.EndDate)
		if err != nil {
			return service.TransactionFilter{}, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		filter.EndDate = &parsed
	}
	return filter, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTiming := logData.AddTiming("listTransactionsMs")
	page, err := h.TransactionService.ListTransactions(ctx, owner, filter, input.Page, input.Limit)
	stopTiming()
	if err != nil {
		return nil, httperr.FromService(err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(page.Transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(page.Transactions)),
		Total:        page.Total,
		CurrentPage:  page.CurrentPage,
		TotalPages:   page.TotalPages,
	}
	for i, tx := range page.Transactions {
		resp.Transactions[i] = transactionToAPI(tx)
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
