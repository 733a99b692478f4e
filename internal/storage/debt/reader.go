package debt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
)

// Executor is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const debtColumns = `id, user_id, title, amount, type, person_name, person_contact,
	description, due_date, status, amount_paid, reminder_sent, created_at, updated_at`

type Reader struct {
	exec Executor
}

func NewReader(exec Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a debt by primary key, settlement history included.
// Returns sql.ErrNoRows when no such debt exists.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Debt, error) {
	row := r.exec.QueryRowContext(ctx, `
		SELECT `+debtColumns+`
		FROM debts
		WHERE id = $1
	`, id)

	d, err := scanDebt(row)
	if err != nil {
		return nil, err
	}

	if err := r.loadSettlements(ctx, []*Debt{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// List returns the owner's debts matching the filter, newest created first.
func (r *Reader) List(ctx context.Context, owner uuid.UUID, filter *DebtFilter) ([]*Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1`
	args := []interface{}{owner}

	if filter != nil {
		if filter.Type != nil {
			args = append(args, *filter.Type)
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filter.Status != nil {
			args = append(args, *filter.Status)
			query += fmt.Sprintf(" AND status = $%d", len(args))
		}
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadSettlements(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Stats aggregates the owner's debts per type.
func (r *Reader) Stats(ctx context.Context, owner uuid.UUID) ([]*TypeStats, error) {
	rows, err := r.exec.QueryContext(ctx, `
		SELECT type,
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount_paid), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'settled')
		FROM debts
		WHERE user_id = $1
		GROUP BY type
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*TypeStats
	for rows.Next() {
		stats := &TypeStats{}
		err := rows.Scan(&stats.Type, &stats.TotalAmount, &stats.TotalPaid,
			&stats.Count, &stats.PendingCount, &stats.SettledCount)
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
	}
	return result, rows.Err()
}

// loadSettlements attaches the ordered settlement history to each debt.
func (r *Reader) loadSettlements(ctx context.Context, debts []*Debt) error {
	if len(debts) == 0 {
		return nil
	}

	ids := make([]string, len(debts))
	byID := make(map[uuid.UUID]*Debt, len(debts))
	for i, d := range debts {
		ids[i] = d.ID.String()
		byID[d.ID] = d
	}

	rows, err := r.exec.QueryContext(ctx, `
		SELECT id, debt_id, amount, note, settled_at
		FROM debt_settlements
		WHERE debt_id = ANY($1::uuid[])
		ORDER BY settled_at ASC, id ASC
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry Settlement
			note  sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.DebtID, &entry.Amount, &note, &entry.Date); err != nil {
			return err
		}
		entry.Note = note.String
		if d, ok := byID[entry.DebtID]; ok {
			d.SettlementHistory = append(d.SettlementHistory, entry)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDebt(row rowScanner) (*Debt, error) {
	var (
		d             Debt
		personContact sql.NullString
		description   sql.NullString
		dueDate       sql.NullTime
		reminderSent  sql.NullTime
	)

	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Amount, &d.Type, &d.PersonName,
		&personContact, &description, &dueDate, &d.Status, &d.AmountPaid,
		&reminderSent, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.PersonContact = personContact.String
	d.Description = description.String
	if dueDate.Valid {
		d.DueDate = &dueDate.Time
	}
	if reminderSent.Valid {
		d.ReminderSent = &reminderSent.Time
	}
	return &d, nil
}
