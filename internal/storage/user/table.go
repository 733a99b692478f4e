package user

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
)

var _ IUsersTable = (*Table)(nil)

// Table provides access to the users table.
type Table struct {
	exec *sql.DB
}

func NewTable(db *sql.DB) *Table {
	return &Table{exec: db}
}

// FindByID retrieves a user by primary key.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := t.exec.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// FindByEmail retrieves a user by email. Returns sql.ErrNoRows when no user
// has registered that address.
func (t *Table) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := t.exec.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// Insert registers a new user and returns the generated ID.
func (t *Table) Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.exec.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, create.Name, create.Email, create.PasswordHash).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
