package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// AccountHandler serves account lookups and administrator role changes.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AccountHandler")
	}
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_handler")),
	}
}

// GetAccount handles GET /users/{userID}.
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requirePathID(w, r, paramUserID)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// ChangeRole handles PATCH /admin/users/{userID}.
func (h *AccountHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	accountID, ok := requirePathID(w, r, paramUserID)
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accounts.ChangeRole(r.Context(), accountID, req.Role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("account role changed",
		slog.Int64("target_account_id", account.ID),
		slog.String("role", account.Role.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}
