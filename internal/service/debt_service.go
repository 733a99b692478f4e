package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/operator/actions"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/debt"
)

// DebtService handles debt business logic: recording, owner-scoped CRUD,
// settlement payments, and per-type statistics.
type DebtService struct {
	storage  *storage.Storage
	operator settlementProcessor
}

// NewDebtService creates a new DebtService.
func NewDebtService(store *storage.Storage, op settlementProcessor) *DebtService {
	return &DebtService{storage: store, operator: op}
}

// RecordDebt validates and creates a new debt. New debts start pending with
// an empty settlement history.
func (s *DebtService) RecordDebt(ctx context.Context, create DebtCreate) (*Debt, error) {
	if strings.TrimSpace(create.Title) == "" {
		return nil, apperrors.Validation("please add a debt title")
	}
	if strings.TrimSpace(create.PersonName) == "" {
		return nil, apperrors.Validation("please add the person name")
	}
	if !debt.ValidType(create.Type) {
		return nil, apperrors.Validation("type must be lent or borrowed")
	}
	if create.Amount.IsNegative() {
		return nil, apperrors.Validation("amount must not be negative")
	}

	id, err := s.storage.Debts.Insert(ctx, &debt.DebtCreate{
		UserID:        create.Owner,
		Title:         strings.TrimSpace(create.Title),
		Amount:        create.Amount,
		Type:          create.Type,
		PersonName:    strings.TrimSpace(create.PersonName),
		PersonContact: strings.TrimSpace(create.PersonContact),
		Description:   strings.TrimSpace(create.Description),
		DueDate:       create.DueDate,
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	row, err := s.storage.Debts.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return debtFromStorage(row), nil
}

// ListDebts returns the owner's debts matching the filter, newest created
// first. No pagination.
func (s *DebtService) ListDebts(ctx context.Context, owner uuid.UUID, filter DebtFilter) ([]*Debt, error) {
	storageFilter := &debt.DebtFilter{}
	if filter.Type != "" {
		debtType := debt.Type(filter.Type)
		if !debt.ValidType(debtType) {
			return nil, apperrors.Validation("type must be lent or borrowed")
		}
		storageFilter.Type = &debtType
	}
	if filter.Status != "" {
		status := debt.Status(filter.Status)
		if !debt.ValidStatus(status) {
			return nil, apperrors.Validation("unknown debt status")
		}
		storageFilter.Status = &status
	}

	rows, err := s.storage.Debts.List(ctx, owner, storageFilter)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	result := make([]*Debt, len(rows))
	for i, row := range rows {
		result[i] = debtFromStorage(row)
	}
	return result, nil
}

// UpdateDebt patches a debt's non-derived fields after the ownership check.
func (s *DebtService) UpdateDebt(ctx context.Context, id, caller uuid.UUID, patch DebtPatch) (*Debt, error) {
	if _, err := s.findOwnedDebt(ctx, id, caller); err != nil {
		return nil, err
	}

	err := s.storage.Debts.Update(ctx, id, &debt.DebtPatch{
		Title:         patch.Title,
		PersonName:    patch.PersonName,
		PersonContact: patch.PersonContact,
		Description:   patch.Description,
		DueDate:       patch.DueDate,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("debt")
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}

	row, err := s.storage.Debts.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return debtFromStorage(row), nil
}

// DeleteDebt removes a debt owned by the caller, history included.
func (s *DebtService) DeleteDebt(ctx context.Context, id, caller uuid.UUID) error {
	if _, err := s.findOwnedDebt(ctx, id, caller); err != nil {
		return err
	}

	err := s.storage.Debts.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("debt")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// ApplySettlement records a payment against the debt's principal. The whole
// read-modify-write runs through the operator in one transaction so
// concurrent settlements can never together exceed the principal.
func (s *DebtService) ApplySettlement(ctx context.Context, id, caller uuid.UUID, amount decimal.Decimal, note string) (*Debt, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, apperrors.Validation("please add a valid amount")
	}

	action := &actions.SettleDebt{
		DebtID: id,
		Owner:  caller,
		Amount: amount,
		Note:   strings.TrimSpace(note),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return debtFromStorage(action.Result), nil
}

// DebtStats aggregates the owner's debts per type.
func (s *DebtService) DebtStats(ctx context.Context, owner uuid.UUID) ([]*DebtTypeStats, error) {
	rows, err := s.storage.Debts.Stats(ctx, owner)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	result := make([]*DebtTypeStats, len(rows))
	for i, row := range rows {
		result[i] = &DebtTypeStats{
			Type:         row.Type,
			TotalAmount:  row.TotalAmount,
			TotalPaid:    row.TotalPaid,
			Count:        row.Count,
			PendingCount: row.PendingCount,
			SettledCount: row.SettledCount,
		}
	}
	return result, nil
}

// findOwnedDebt loads a debt and verifies the caller owns it. Existence is
// checked before ownership so a caller probing another user's record still
// learns nothing beyond 401.
func (s *DebtService) findOwnedDebt(ctx context.Context, id, caller uuid.UUID) (*debt.Debt, error) {
	row, err := s.storage.Debts.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("debt")
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if row.UserID != caller {
		return nil, apperrors.Unauthorized("user not authorized")
	}
	return row, nil
}
