package auth

import (
	"time"

	"github.com/ledgerline/finance-server/internal/service"
)

// User is the API model for an account owner.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Name      string `json:"name" doc:"Display name"`
	Email     string `json:"email" doc:"Email address"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

// AuthResponseBody carries a signed token plus the user it identifies.
type AuthResponseBody struct {
	Token string `json:"token" doc:"Bearer token for subsequent requests"`
	User  User   `json:"user"`
}

func authResultToAPI(result *service.AuthResult) AuthResponseBody {
	return AuthResponseBody{
		Token: result.Token,
		User: User{
			ID:        result.User.ID.String(),
			Name:      result.User.Name,
			Email:     result.User.Email,
			CreatedAt: result.User.CreatedAt.Format(time.RFC3339),
		},
	}
}
