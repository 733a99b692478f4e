package transaction

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

// TransactionTypeStats is the API model for one type's aggregate.
type TransactionTypeStats struct {
	Type  string `json:"type" doc:"income or expense"`
	Total string `json:"total" doc:"Decimal sum of amounts"`
	Count int    `json:"count" doc:"Number of transactions"`
}

// TransactionCategoryStats is the API model for one (type, category) aggregate.
type TransactionCategoryStats struct {
	Type     string `json:"type" doc:"income or expense"`
	Category string `json:"category" doc:"Category label"`
	Total    string `json:"total" doc:"Decimal sum of amounts"`
	Count    int    `json:"count" doc:"Number of transactions"`
}

// TransactionStatsResponseBody is the response body for transaction statistics.
type TransactionStatsResponseBody struct {
	ByType            []TransactionTypeStats     `json:"byType" doc:"Current-month aggregates per type"`
	ByTypeAndCategory []TransactionCategoryStats `json:"byTypeAndCategory" doc:"Current-month aggregates per type and category"`
}

// TransactionStatsOutput is the Huma output for transaction statistics.
type TransactionStatsOutput struct {
	Body TransactionStatsResponseBody
}

// transactionStatsProvider is the interface for transaction statistics.
type transactionStatsProvider interface {
	TransactionStats(ctx context.Context, owner uuid.UUID, asOf time.Time) (*service.TransactionStats, error)
}

// TransactionStatsHandler handles GET /v1/transactions/stats.
type TransactionStatsHandler struct {
	TransactionService transactionStatsProvider
}

// NewTransactionStatsHandler creates a new TransactionStatsHandler.
func NewTransactionStatsHandler(svc transactionStatsProvider) *TransactionStatsHandler {
	return &TransactionStatsHandler{TransactionService: svc}
}

// Register registers the transaction stats endpoint with the Huma API.
func (h *TransactionStatsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-stats",
		Method:      http.MethodGet,
		Path:        "/v1/transactions/stats",
		Summary:     "Transaction statistics",
		Description: "Aggregates the caller's current-month transactions by type and by type and category.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *TransactionStatsHandler) handle(ctx context.Context, _ *struct{}) (*TransactionStatsOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	stats, err := h.TransactionService.TransactionStats(ctx, owner, time.Now().UTC())
	if err != nil {
		return nil, httperr.FromService(err, "failed to aggregate transactions")
	}

	resp := TransactionStatsResponseBody{
		ByType:            make([]TransactionTypeStats, len(stats.ByType)),
		ByTypeAndCategory: make([]TransactionCategoryStats, len(stats.ByTypeAndCategory)),
	}
	for i, row := range stats.ByType {
		resp.ByType[i] = TransactionTypeStats{
			Type:  string(row.Type),
			Total: row.Total.String(),
			Count: row.Count,
		}
	}
	for i, row := range stats.ByTypeAndCategory {
		resp.ByTypeAndCategory[i] = TransactionCategoryStats{
			Type:     string(row.Type),
			Category: row.Category,
			Total:    row.Total.String(),
			Count:    row.Count,
		}
	}
	return &TransactionStatsOutput{Body: resp}, nil
}
