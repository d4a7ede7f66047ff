package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// CommentHandler serves todo comments, including the administrator bulk
// delete.
type CommentHandler struct {
	comments service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}
	return &CommentHandler{
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_handler")),
	}
}

// AddComment handles POST /todos/{todoID}/comments.
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	// Contents are checked by the service after todo and membership.
	var req CreateCommentRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	comment, err := h.comments.AddComment(r.Context(), id.AccountID, todoID, req.Contents)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, commentToResponse(comment))
}

// ListComments handles GET /todos/{todoID}/comments.
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(r.Context(), todoID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, commentsToResponse(comments))
}

// DeleteAllComments handles DELETE /admin/todos/{todoID}/comments.
func (h *CommentHandler) DeleteAllComments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	todoID, ok := requirePathID(w, r, paramTodoID)
	if !ok {
		return
	}

	deleted, err := h.comments.DeleteAllComments(r.Context(), todoID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("comments deleted", slog.Int64("todo_id", todoID), slog.Int64("deleted", deleted))
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteCommentsResponse{Deleted: deleted})
}
