package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/transaction"
)

const defaultTransactionLimit = 10

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// CreateTransaction validates and creates a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (*Transaction, error) {
	if strings.TrimSpace(create.Title) == "" {
		return nil, apperrors.Validation("please add a transaction title")
	}
	if strings.TrimSpace(create.Category) == "" {
		return nil, apperrors.Validation("please add a category")
	}
	if !transaction.ValidType(create.Type) {
		return nil, apperrors.Validation("type must be income or expense")
	}
	if create.Amount.IsNegative() {
		return nil, apperrors.Validation("amount must not be negative")
	}

	id, err := s.storage.Transactions.Insert(ctx, &transaction.TransactionCreate{
		UserID:      create.Owner,
		Title:       strings.TrimSpace(create.Title),
		Amount:      create.Amount,
		Type:        create.Type,
		Category:    strings.TrimSpace(create.Category),
		Description: strings.TrimSpace(create.Description),
		Date:        create.Date,
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return transactionFromStorage(row), nil
}

// ListTransactions returns one page of the owner's transactions, newest date
// first, with offset pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, owner uuid.UUID, filter TransactionFilter, page, limit int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultTransactionLimit
	}

	storageFilter := &transaction.TransactionFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if filter.Type != "" {
		transactionType := transaction.Type(filter.Type)
		if !transaction.ValidType(transactionType) {
			return nil, apperrors.Validation("type must be income or expense")
		}
		storageFilter.Type = &transactionType
	}
	if filter.Category != "" {
		category := filter.Category
		storageFilter.Category = &category
	}

	rows, err := s.storage.Transactions.List(ctx, owner, storageFilter)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	total, err := s.storage.Transactions.Count(ctx, owner, storageFilter)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	result := &TransactionPage{
		Transactions: make([]*Transaction, len(rows)),
		Total:        total,
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
	}
	for i, row := range rows {
		result.Transactions[i] = transactionFromStorage(row)
	}
	return result, nil
}

// UpdateTransaction patches a transaction after the ownership check.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id, caller uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	if err := s.checkOwnership(ctx, id, caller); err != nil {
		return nil, err
	}

	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, apperrors.Validation("amount must not be negative")
	}
	if patch.Type != nil && !transaction.ValidType(*patch.Type) {
		return nil, apperrors.Validation("type must be income or expense")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperrors.Validation("please add a transaction title")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, apperrors.Validation("please add a category")
	}

	err := s.storage.Transactions.Update(ctx, id, &transaction.TransactionPatch{
		Title:       patch.Title,
		Amount:      patch.Amount,
		Type:        patch.Type,
		Category:    patch.Category,
		Description: patch.Description,
		Date:        patch.Date,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("transaction")
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}

	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return transactionFromStorage(row), nil
}

// DeleteTransaction removes a transaction owned by the caller.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id, caller uuid.UUID) error {
	if err := s.checkOwnership(ctx, id, caller); err != nil {
		return err
	}

	err := s.storage.Transactions.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("transaction")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// TransactionStats aggregates the owner's transactions over the calendar
// month containing asOf, by type and by (type, category).
func (s *TransactionService) TransactionStats(ctx context.Context, owner uuid.UUID, asOf time.Time) (*TransactionStats, error) {
	from, to := monthWindow(asOf)

	byType, err := s.storage.Transactions.StatsByType(ctx, owner, from, to)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	byCategory, err := s.storage.Transactions.StatsByCategory(ctx, owner, from, to)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	stats := &TransactionStats{
		ByType:            make([]*TransactionTypeStats, len(byType)),
		ByTypeAndCategory: make([]*TransactionCategoryStats, len(byCategory)),
	}
	for i, row := range byType {
		stats.ByType[i] = &TransactionTypeStats{Type: row.Type, Total: row.Total, Count: row.Count}
	}
	for i, row := range byCategory {
		stats.ByTypeAndCategory[i] = &TransactionCategoryStats{
			Type:     row.Type,
			Category: row.Category,
			Total:    row.Total,
			Count:    row.Count,
		}
	}
	return stats, nil
}

// monthWindow returns the half-open interval [start of asOf's month, start
// of the next month). A record dated exactly at the lower bound is in, one
// at the upper bound is out.
func monthWindow(asOf time.Time) (time.Time, time.Time) {
	from := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	return from, from.AddDate(0, 1, 0)
}

func (s *TransactionService) checkOwnership(ctx context.Context, id, caller uuid.UUID) error {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound("transaction")
	}
	if err != nil {
		return apperrors.Store(err)
	}
	if row.UserID != caller {
		return apperrors.Unauthorized("user not authorized")
	}
	return nil
}
