package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Email    string `json:"email" format:"email" doc:"Email address"`
	Password string `json:"password" minLength:"1" doc:"Password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

// LoginOutput is the Huma output for logging in.
type LoginOutput struct {
	Body AuthResponseBody
}

// userAuthenticator is the interface for verifying credentials.
type userAuthenticator interface {
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// LoginHandler handles POST /v1/auth/login.
type LoginHandler struct {
	AuthService userAuthenticator
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(svc userAuthenticator) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

// Register registers the login endpoint with the Huma API.
func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login-user",
		Method:      http.MethodPost,
		Path:        "/v1/auth/login",
		Summary:     "Log in",
		Description: "Verifies credentials and returns a signed token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, httperr.FromService(err, "failed to log in")
	}
	return &LoginOutput{Body: authResultToAPI(result)}, nil
}
