package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/storage/debt"
)

// Settlement represents one settlement payment in the service layer.
type Settlement struct {
	ID     uuid.UUID
	Amount decimal.Decimal
	Note   string
	Date   time.Time
}

// Debt represents a debt in the service layer.
type Debt struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             string
	Amount            decimal.Decimal
	Type              debt.Type
	PersonName        string
	PersonContact     string
	Description       string
	DueDate           *time.Time
	Status            debt.Status
	AmountPaid        decimal.Decimal
	RemainingAmount   decimal.Decimal
	SettlementHistory []Settlement
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DebtCreate is the input for recording a new debt.
type DebtCreate struct {
	Owner         uuid.UUID
	Title         string
	Amount        decimal.Decimal
	Type          debt.Type
	PersonName    string
	PersonContact string
	Description   string
	DueDate       *time.Time
}

// DebtPatch updates the non-derived fields of a debt. Balance and status can
// only move through ApplySettlement.
type DebtPatch struct {
	Title         *string
	PersonName    *string
	PersonContact *string
	Description   *string
	DueDate       *time.Time
}

// DebtFilter narrows ListDebts by type and/or status.
type DebtFilter struct {
	Type   string
	Status string
}

// DebtTypeStats is the aggregate over one debt type for an owner.
type DebtTypeStats struct {
	Type         debt.Type
	TotalAmount  decimal.Decimal
	TotalPaid    decimal.Decimal
	Count        int
	PendingCount int
	SettledCount int
}

func debtFromStorage(row *debt.Debt) *Debt {
	converted := &Debt{
		ID:                row.ID,
		UserID:            row.UserID,
		Title:             row.Title,
		Amount:            row.Amount,
		Type:              row.Type,
		PersonName:        row.PersonName,
		PersonContact:     row.PersonContact,
		Description:       row.Description,
		DueDate:           row.DueDate,
		Status:            row.Status,
		AmountPaid:        row.AmountPaid,
		RemainingAmount:   row.RemainingAmount(),
		SettlementHistory: make([]Settlement, len(row.SettlementHistory)),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	for i, entry := range row.SettlementHistory {
		converted.SettlementHistory[i] = Settlement{
			ID:     entry.ID,
			Amount: entry.Amount,
			Note:   entry.Note,
			Date:   entry.Date,
		}
	}
	return converted
}
