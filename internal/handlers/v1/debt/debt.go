package debt

import (
	"time"

	"github.com/ledgerline/finance-server/internal/service"
	storagedebt "github.com/ledgerline/finance-server/internal/storage/debt"
)

// storageDebtType converts a request string into the storage-layer debt
// type. The service validates it.
func storageDebtType(t string) storagedebt.Type {
	return storagedebt.Type(t)
}

// Settlement is the API response model for one settlement payment.
type Settlement struct {
	ID     string `json:"id" doc:"Settlement UUID"`
	Amount string `json:"amount" doc:"Decimal amount paid"`
	Note   string `json:"note,omitempty" doc:"Free-text note"`
	Date   string `json:"date" doc:"RFC3339 payment date"`
}

// Debt is the API response model for a debt. It is used only for responses,
// not for request bodies.
type Debt struct {
	ID                string       `json:"id" doc:"Debt UUID"`
	Title             string       `json:"title" doc:"Debt title"`
	Amount            string       `json:"amount" doc:"Decimal principal"`
	Type              string       `json:"type" doc:"lent or borrowed"`
	PersonName        string       `json:"personName" doc:"Counterparty name"`
	PersonContact     string       `json:"personContact,omitempty" doc:"Counterparty contact"`
	Description       string       `json:"description,omitempty" doc:"Free-text description"`
	DueDate           string       `json:"dueDate,omitempty" doc:"RFC3339 due date"`
	Status            string       `json:"status" doc:"pending, partially_settled, or settled"`
	AmountPaid        string       `json:"amountPaid" doc:"Decimal amount settled so far"`
	RemainingAmount   string       `json:"remainingAmount" doc:"Decimal principal minus amountPaid"`
	SettlementHistory []Settlement `json:"settlementHistory" doc:"Ordered settlement payments"`
	CreatedAt         string       `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt         string       `json:"updatedAt" doc:"RFC3339 last update time"`
}

func debtToAPI(d *service.Debt) Debt {
	converted := Debt{
		ID:                d.ID.String(),
		Title:             d.Title,
		Amount:            d.Amount.String(),
		Type:              string(d.Type),
		PersonName:        d.PersonName,
		PersonContact:     d.PersonContact,
		Description:       d.Description,
		Status:            string(d.Status),
		AmountPaid:        d.AmountPaid.String(),
		RemainingAmount:   d.RemainingAmount.String(),
		SettlementHistory: make([]Settlement, len(d.SettlementHistory)),
		CreatedAt:         d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         d.UpdatedAt.Format(time.RFC3339),
	}

	if d.DueDate != nil {
		converted.DueDate = d.DueDate.Format(time.RFC3339)
	}
	for i, entry := range d.SettlementHistory {
		converted.SettlementHistory[i] = Settlement{
			ID:     entry.ID.String(),
			Amount: entry.Amount.String(),
			Note:   entry.Note,
			Date:   entry.Date.Format(time.RFC3339),
		}
	}
	return converted
}
