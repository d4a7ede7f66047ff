package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// TodoHandler serves todo creation and lookup.
type TodoHandler struct {
	todos  service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos service.TodoService, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}
	return &TodoHandler{
		todos:  todos,
		logger: logger.With(slog.String("component", "todo_handler")),
	}
}

// CreateTodo handles POST /todos. The caller becomes the creator.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	todo, err := h.todos.CreateTodo(r.Context(), id.AccountID, req.Title, req.Contents)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("todo created", slog.Int64("todo_id", todo.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, todoToResponse(todo))
}

// GetTodo handles GET /todos/{todoID}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	todo, err := h.todos.GetTodo(r.Context(), todoID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoToResponse(todo))
}

// ListTodos handles GET /todos?page=&size=.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid page")
		return
	}
	size, err := queryInt(r, "size", service.DefaultPageSize)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid size")
		return
	}

	result, err := h.todos.ListTodos(r.Context(), page, size)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, todoPageToResponse(result))
}
