package debt

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Type says which direction the money went when the debt was recorded.
type Type string

const (
	TypeLent     Type = "lent"     // money the owner gave out
	TypeBorrowed Type = "borrowed" // money the owner took
)

// ValidType reports whether t is a known debt type.
func ValidType(t Type) bool {
	return t == TypeLent || t == TypeBorrowed
}

// Status is derived from (amount, amountPaid), never set directly.
type Status string

const (
	StatusPending          Status = "pending"
	StatusPartiallySettled Status = "partially_settled"
	StatusSettled          Status = "settled"
)

// ValidStatus reports whether s is a known debt status.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusPartiallySettled || s == StatusSettled
}

// StatusFor derives the status from the principal and the amount paid so far.
func StatusFor(amount, amountPaid decimal.Decimal) Status {
	switch {
	case amountPaid.GreaterThanOrEqual(amount) && amount.GreaterThan(decimal.Zero):
		return StatusSettled
	case amountPaid.GreaterThan(decimal.Zero):
		return StatusPartiallySettled
	default:
		return StatusPending
	}
}

// Settlement is one payment recorded against a debt's principal.
type Settlement struct {
	ID     uuid.UUID
	DebtID uuid.UUID
	Amount decimal.Decimal
	Note   string
	Date   time.Time
}

// Debt represents a debt record.
type Debt struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             string
	Amount            decimal.Decimal
	Type              Type
	PersonName        string
	PersonContact     string
	Description       string
	DueDate           *time.Time
	Status            Status
	AmountPaid        decimal.Decimal
	ReminderSent      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	SettlementHistory []Settlement
}

// RemainingAmount is the unpaid part of the principal, computed on read.
func (d *Debt) RemainingAmount() decimal.Decimal {
	return d.Amount.Sub(d.AmountPaid)
}

// DebtCreate is the input for creating a new debt.
type DebtCreate struct {
	UserID        uuid.UUID
	Title         string
	Amount        decimal.Decimal
	Type          Type
	PersonName    string
	PersonContact string
	Description   string
	DueDate       *time.Time
}

// DebtPatch updates the non-derived fields of a debt. Balance fields move
// only through settlements.
type DebtPatch struct {
	Title         *string
	PersonName    *string
	PersonContact *string
	Description   *string
	DueDate       *time.Time
}

// DebtFilter specifies optional filters for listing debts.
type DebtFilter struct {
	Type   *Type
	Status *Status
}

// TypeStats is the per-type aggregate over all of an owner's debts.
type TypeStats struct {
	Type         Type
	TotalAmount  decimal.Decimal
	TotalPaid    decimal.Decimal
	Count        int
	PendingCount int
	SettledCount int
}

// IDebtsTable defines the interface for debt storage operations.
// This abstraction allows swapping the implementation without changing callers.
type IDebtsTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	Insert(ctx context.Context, create *DebtCreate) (uuid.UUID, error)
	List(ctx context.Context, owner uuid.UUID, filter *DebtFilter) ([]*Debt, error)
	Update(ctx context.Context, id uuid.UUID, patch *DebtPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, owner uuid.UUID) ([]*TypeStats, error)
}
