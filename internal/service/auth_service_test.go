package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerline/finance-server/internal/apperrors"
	"github.com/ledgerline/finance-server/internal/auth"
	"github.com/ledgerline/finance-server/internal/storage"
	"github.com/ledgerline/finance-server/internal/storage/user"
)

func newTestAuthService(t *testing.T) (*AuthService, *user.MockIUsersTable) {
	t.Helper()
	mockTable := new(user.MockIUsersTable)
	store := &storage.Storage{Users: mockTable}
	return NewAuthService(store, []byte("test-secret"), time.Hour), mockTable
}

// -- Register tests --

func TestRegister_Success(t *testing.T) {
	svc, mockTable := newTestAuthService(t)

	userID := uuid.Must(uuid.NewV4())

	mockTable.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, sql.ErrNoRows).Once()
	mockTable.On("Insert", mock.Anything, mock.MatchedBy(func(c *user.UserCreate) bool {
		return c.Name == "Sam" &&
			c.Email == "sam@example.com" &&
			auth.CheckPassword(c.PasswordHash, "hunter22")
	})).Return(userID, nil)
	mockTable.On("FindByID", mock.Anything, userID).Return(&user.User{
		ID:    userID,
		Name:  "Sam",
		Email: "sam@example.com",
	}, nil)

	result, err := svc.Register(context.Background(), "Sam", "  SAM@Example.com ", "hunter22")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, userID, result.User.ID)
	assert.Equal(t, "sam@example.com", result.User.Email)
	mockTable.AssertExpectations(t)

	// The issued token resolves back to the new user.
	resolved, err := auth.VerifyToken([]byte("test-secret"), result.Token)
	assert.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "", "sam@example.com", "hunter22")
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "please add all required fields", err.Error())

	_, err = svc.Register(context.Background(), "Sam", "", "hunter22")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Register(context.Background(), "Sam", "sam@example.com", "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegister_BadEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "Sam", "not-an-email", "hunter22")
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), "Sam", "sam@example.com", "12345")
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegister_DuplicateUser(t *testing.T) {
	svc, mockTable := newTestAuthService(t)

	mockTable.On("FindByEmail", mock.Anything, "sam@example.com").Return(&user.User{
		ID:    uuid.Must(uuid.NewV4()),
		Email: "sam@example.com",
	}, nil)

	_, err := svc.Register(context.Background(), "Sam", "sam@example.com", "hunter22")

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "user already exists", err.Error())
	mockTable.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// -- Login tests --

func TestLogin_Success(t *testing.T) {
	svc, mockTable := newTestAuthService(t)

	userID := uuid.Must(uuid.NewV4())
	passwordHash, err := auth.HashPassword("hunter22")
	assert.NoError(t, err)

	mockTable.On("FindByEmail", mock.Anything, "sam@example.com").Return(&user.User{
		ID:           userID,
		Name:         "Sam",
		Email:        "sam@example.com",
		PasswordHash: passwordHash,
	}, nil)

	result, err := svc.Login(context.Background(), "Sam@Example.com", "hunter22")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, userID, result.User.ID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockTable := newTestAuthService(t)

	mockTable.On("FindByEmail", mock.Anything, "sam@example.com").Return(nil, sql.ErrNoRows)

	_, err := svc.Login(context.Background(), "sam@example.com", "hunter22")

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockTable := newTestAuthService(t)

	passwordHash, err := auth.HashPassword("hunter22")
	assert.NoError(t, err)

	mockTable.On("FindByEmail", mock.Anything, "sam@example.com").Return(&user.User{
		ID:           uuid.Must(uuid.NewV4()),
		Email:        "sam@example.com",
		PasswordHash: passwordHash,
	}, nil)

	_, err = svc.Login(context.Background(), "sam@example.com", "wrong-password")

	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "invalid credentials", err.Error())
}
