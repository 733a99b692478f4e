package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

var _ ITransactionsTable = (*Table)(nil)

const transactionColumns = `id, user_id, title, amount, type, category, description, date, created_at, updated_at`

// Table provides access to the transactions table.
type Table struct {
	exec *sql.DB
}

func NewTable(db *sql.DB) *Table {
	return &Table{exec: db}
}

// FindByID retrieves a transaction by primary key.
// Returns sql.ErrNoRows when no such transaction exists.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	row := t.exec.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1
	`, id)
	return scanTransaction(row)
}

// Insert creates a new transaction and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	date := create.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var id uuid.UUID
	err := t.exec.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, title, amount, type, category, description, date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id
	`, create.UserID, create.Title, create.Amount, create.Type, create.Category,
		create.Description, date).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// filterClauses appends WHERE fragments for the optional filters, sharing the
// same placeholders between List and Count so the page math stays honest.
func filterClauses(owner uuid.UUID, filter *TransactionFilter) (string, []interface{}) {
	query := " WHERE user_id = $1"
	args := []interface{}{owner}

	if filter == nil {
		return query, args
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	return query, args
}

// List returns one page of the owner's transactions, newest date first.
func (t *Table) List(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	where, args := filterClauses(owner, filter)
	query := "SELECT " + transactionColumns + " FROM transactions" + where +
		" ORDER BY date DESC, id DESC"

	if filter != nil && filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := t.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// Count returns how many of the owner's transactions match the filter,
// ignoring the page window.
func (t *Table) Count(ctx context.Context, owner uuid.UUID, filter *TransactionFilter) (int, error) {
	where, args := filterClauses(owner, filter)

	var total int
	err := t.exec.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total)
	return total, err
}

// Update applies a patch. Returns sql.ErrNoRows when the transaction does
// not exist.
func (t *Table) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) error {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	if patch.Type != nil {
		set("type", *patch.Type)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Date != nil {
		set("date", *patch.Date)
	}

	if len(sets) == 0 {
		var found uuid.UUID
		return t.exec.QueryRowContext(ctx, `SELECT id FROM transactions WHERE id = $1`, id).Scan(&found)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := t.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a transaction. Returns sql.ErrNoRows when it does not exist.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := t.exec.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// StatsByType sums amounts per type over the half-open window [from, to).
func (t *Table) StatsByType(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*TypeStats, error) {
	rows, err := t.exec.QueryContext(ctx, `
		SELECT type, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY type
	`, owner, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*TypeStats
	for rows.Next() {
		stats := &TypeStats{}
		if err := rows.Scan(&stats.Type, &stats.Total, &stats.Count); err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, rows.Err()
}

// StatsByCategory sums amounts per (type, category) over [from, to).
func (t *Table) StatsByCategory(ctx context.Context, owner uuid.UUID, from, to time.Time) ([]*CategoryStats, error) {
	rows, err := t.exec.QueryContext(ctx, `
		SELECT type, category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY type, category
	`, owner, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*CategoryStats
	for rows.Next() {
		stats := &CategoryStats{}
		if err := rows.Scan(&stats.Type, &stats.Category, &stats.Total, &stats.Count); err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	var (
		tx          Transaction
		description sql.NullString
	)

	err := row.Scan(&tx.ID, &tx.UserID, &tx.Title, &tx.Amount, &tx.Type,
		&tx.Category, &description, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}

	tx.Description = description.String
	return &tx, nil
}
