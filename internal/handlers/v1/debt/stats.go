package debt

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// DebtTypeStats is the API model for one debt type's aggregate.
type DebtTypeStats struct {
	Type         string `json:"type" doc:"lent or borrowed"`
	TotalAmount  string `json:"totalAmount" doc:"Decimal sum of principals"`
	TotalPaid    string `json:"totalPaid" doc:"Decimal sum of settled amounts"`
	Count        int    `json:"count" doc:"Number of debts"`
	PendingCount int    `json:"pendingCount" doc:"Number of pending debts"`
	SettledCount int    `json:"settledCount" doc:"Number of settled debts"`
}

// DebtStatsResponseBody is the response body for debt statistics.
type DebtStatsResponseBody struct {
	Stats []DebtTypeStats `json:"stats" doc:"Per-type aggregates over all of the caller's debts"`
}

// DebtStatsOutput is the Huma output for debt statistics.
type DebtStatsOutput struct {
	Body DebtStatsResponseBody
}

// debtStatsProvider is the interface for debt statistics.
type debtStatsProvider interface {
	DebtStats(ctx context.Context, owner uuid.UUID) ([]*service.DebtTypeStats, error)
}

// DebtStatsHandler handles GET /v1/debts/stats.
type DebtStatsHandler struct {
	DebtService debtStatsProvider
}

// NewDebtStatsHandler creates a new DebtStatsHandler.
func NewDebtStatsHandler(svc debtStatsProvider) *DebtStatsHandler {
	return &DebtStatsHandler{DebtService: svc}
}

// Register registers the debt stats endpoint with the Huma API.
func (h *DebtStatsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "debt-stats",
		Method:      http.MethodGet,
		Path:        "/v1/debts/stats",
		Summary:     "Debt statistics",
		Description: "Aggregates the caller's debts per type.",
		Tags:        []string{"Debts"},
	}, h.handle)
}

func (h *DebtStatsHandler) handle(ctx context.Context, _ *struct{}) (*DebtStatsOutput, error) {
	owner, ok := auth.Owner(ctx)
	if !ok {
		return nil, httperr.MissingOwner()
	}

	stats, err := h.DebtService.DebtStats(ctx, owner)
	if err != nil {
		return nil, httperr.FromService(err, "failed to aggregate debts")
	}

	resp := DebtStatsResponseBody{Stats: make([]DebtTypeStats, len(stats))}
	for i, row := range stats {
		resp.Stats[i] = DebtTypeStats{
			Type:         string(row.Type),
			TotalAmount:  row.TotalAmount.String(),
			TotalPaid:    row.TotalPaid.String(),
			Count:        row.Count,
			PendingCount: row.PendingCount,
			SettledCount: row.SettledCount,
		}
	}
	return &DebtStatsOutput{Body: resp}, nil
}
