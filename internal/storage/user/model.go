package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a registered account owner.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserCreate is the input for registering a new user.
type UserCreate struct {
	Name         string
	Email        string
	PasswordHash string
}

// IUsersTable defines the interface for user storage operations.
type IUsersTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error)
}
