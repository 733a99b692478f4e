package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/user"
)

const minPasswordLength = 6

// User represents an account owner in the service layer.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// AuthResult is a signed token plus the user it identifies.
type AuthResult struct {
	Token string
	User  User
}

// AuthService handles registration and login. The rest of the API never sees
// credentials, only the owner identity the middleware resolves from a token.
type AuthService struct {
	storage  *storage.Storage
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store *storage.Storage, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{storage: store, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a user and returns a signed token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, apperrors.Validation("please add all required fields")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.Validation("please add a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.Validationf("password must be at least %d characters", minPasswordLength)
	}

	_, err := s.storage.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Validation("user already exists")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Store(err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	id, err := s.storage.Users.Insert(ctx, &user.UserCreate{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, apperrors.Store(err)
	}

	row, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return s.authResult(row)
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.Validation("please add all required fields")
	}

	row, err := s.storage.Users.FindByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if !auth.CheckPassword(row.PasswordHash, password) {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.authResult(row)
}

func (s *AuthService) authResult(row *user.User) (*AuthResult, error) {
	token, err := auth.IssueToken(s.secret, row.ID, s.tokenTTL)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	return &AuthResult{
		Token: token,
		User: User{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
		},
	}, nil
}
