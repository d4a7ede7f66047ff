package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// ManagerService is the part of manager.Service used by the HTTP layer.
type ManagerService interface {
	AssignManager(ctx context.Context, actingID, todoID, candidateID int64) (*domain.Manager, bool, error)
	RemoveManager(ctx context.Context, actingID, todoID, managerID int64) error
	ListManagers(ctx context.Context, todoID int64) ([]*domain.Manager, error)
}

// ManagerHandler serves manager assignment for todos.
type ManagerHandler struct {
	managers ManagerService
	logger   *slog.Logger
}

// NewManagerHandler creates a new ManagerHandler.
func NewManagerHandler(managers ManagerService, logger *slog.Logger) *ManagerHandler {
	if managers == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("manager service cannot be nil for ManagerHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ManagerHandler")
	}
	return &ManagerHandler{
		managers: managers,
		logger:   logger.With(slog.String("component", "manager_handler")),
	}
}

// ListManagers handles GET /todos/{todoID}/managers.
func (h *ManagerHandler) ListManagers(w http.ResponseWriter, r *http.Request) {
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	managers, err := h.managers.ListManagers(r.Context(), todoID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, managersToResponse(managers))
}

// AssignManager handles POST /todos/{todoID}/managers. It responds 201 for
// a new assignment and 200 when the account already manages the todo.
func (h *ManagerHandler) AssignManager(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	var req AssignManagerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	m, created, err := h.managers.AssignManager(r.Context(), id.AccountID, todoID, req.AccountID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		log.Info("manager assigned",
			slog.Int64("todo_id", todoID),
			slog.Int64("manager_id", m.ID),
			slog.Int64("manager_account_id", m.AccountID))
	}
	shared.RespondWithJSON(w, r, status, managerToResponse(m))
}

// RemoveManager handles DELETE /todos/{todoID}/managers/{managerID}.
func (h *ManagerHandler) RemoveManager(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}
	managerID, ok := requirePathID(w, r, paramManagerID)
	if !ok {
		return
	}

	if err := h.managers.RemoveManager(r.Context(), id.AccountID, todoID, managerID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("manager removed", slog.Int64("todo_id", todoID), slog.Int64("manager_id", managerID))
	w.WriteHeader(http.StatusNoContent)
}
