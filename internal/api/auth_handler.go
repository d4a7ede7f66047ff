package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// AuthService is the part of auth.Service used by the HTTP layer.
type AuthService interface {
	Signup(ctx context.Context, email, password, role string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error
}

// AuthHandler handles signup, signin and password changes.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthService, logger *slog.Logger) *AuthHandler {
	if auth == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("auth service cannot be nil for AuthHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		auth:   auth,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Signup(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, bearer(token))
}

// Signin handles POST /auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bearer(token))
}

// ChangePassword handles PUT /users/password for the authenticated caller.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), id.AccountID, req.OldPassword, req.NewPassword); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("password changed", slog.Int64("account_id", id.AccountID))
	w.WriteHeader(http.StatusNoContent)
}

func bearer(token string) TokenResponse {
	return TokenResponse{BearerToken: "Bearer " + token}
}
