package debt

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
)

var _ IDebtsTable = (*Table)(nil)

// Table provides access to the debts table outside of a transaction.
type Table struct {
	Reader
	exec Executor
}

func NewTable(db *sql.DB) *Table {
	return &Table{
		Reader: Reader{exec: db},
		exec:   db,
	}
}

// Insert creates a new debt and returns its generated ID. New debts start
// pending with nothing paid.
func (t *Table) Insert(ctx context.Context, create *DebtCreate) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.exec.QueryRowContext(ctx, `
		INSERT INTO debts (user_id, title, amount, type, person_name, person_contact, description, due_date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id
	`, create.UserID, create.Title, create.Amount, create.Type, create.PersonName,
		create.PersonContact, create.Description, create.DueDate).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies a patch over the non-derived fields. A nil field leaves the
// column untouched. Returns sql.ErrNoRows when the debt does not exist.
func (t *Table) Update(ctx context.Context, id uuid.UUID, patch *DebtPatch) error {
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
	if patch.PersonName != nil {
		set("person_name", *patch.PersonName)
	}
	if patch.PersonContact != nil {
		set("person_contact", *patch.PersonContact)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}

	if len(sets) == 0 {
		// Nothing to change, but the caller still expects existence checks.
		var found uuid.UUID
		return t.exec.QueryRowContext(ctx, `SELECT id FROM debts WHERE id = $1`, id).Scan(&found)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE debts SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := t.exec.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a debt; settlement history rows cascade with it.
// Returns sql.ErrNoRows when the debt does not exist.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := t.exec.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
