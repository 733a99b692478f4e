package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/finance-server/internal/handlers/v1/httperr"
	"github.com/ledgerline/finance-server/internal/service"
)

// RegisterBody is the request body for registering a user.
type RegisterBody struct {
	Name     string `json:"name" minLength:"1" doc:"Display name"`
	Email    string `json:"email" format:"email" doc:"Email address"`
	Password string `json:"password" minLength:"6" doc:"Password, at least 6 characters"`
}

// RegisterInput is the Huma input for registering a user.
type RegisterInput struct {
	Body RegisterBody
}

// RegisterOutput is the Huma output for registering a user.
type RegisterOutput struct {
	Body AuthResponseBody
}

// userRegistrar is the interface for registering users.
type userRegistrar interface {
	Register(ctx context.Context, name, email, password string) (*service.AuthResult, error)
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AuthService userRegistrar
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(svc userRegistrar) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

// Register registers the register endpoint with the Huma API.
func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-user",
		Method:        http.MethodPost,
		Path:          "/v1/auth/register",
		Summary:       "Register",
		Description:   "Creates a user account and returns a signed token.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	result, err := h.AuthService.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, httperr.FromService(err, "failed to register user")
	}
	return &RegisterOutput{Body: authResultToAPI(result)}, nil
}
