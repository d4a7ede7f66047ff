package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// CommentService provides the comments of a todo.
type CommentService interface {
	// AddComment stores a comment by actingID. Only managers of the todo may comment.
	AddComment(ctx context.Context, actingID, todoID int64, contents string) (*domain.Comment, error)

	// ListComments returns the comments of a todo in creation order.
	ListComments(ctx context.Context, todoID int64) ([]*domain.Comment, error)

	// DeleteAllComments removes every comment of a todo and returns how many were removed.
	DeleteAllComments(ctx context.Context, todoID int64) (int64, error)
}

// CommentServiceImpl implements CommentService.
type CommentServiceImpl struct {
	todos    store.TodoStore
	managers store.ManagerStore
	comments store.CommentStore
	logger   *slog.Logger
}

var _ CommentService = (*CommentServiceImpl)(nil)

// NewCommentService creates a CommentService.
func NewCommentService(
	todos store.TodoStore,
	managers store.ManagerStore,
	comments store.CommentStore,
	logger *slog.Logger,
) (*CommentServiceImpl, error) {
	if todos == nil || managers == nil || comments == nil {
		return nil, errors.New("comment service requires todo, manager and comment stores")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentServiceImpl{
		todos:    todos,
		managers: managers,
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_service")),
	}, nil
}

// AddComment implements CommentService. Checks, in order: the todo exists,
// actingID manages it, and contents is not blank.
func (s *CommentServiceImpl) AddComment(
	ctx context.Context,
	actingID, todoID int64,
	contents string,
) (*domain.Comment, error) {
	if err := s.requireTodo(ctx, todoID); err != nil {
		return nil, err
	}

	isManager, err := s.managers.Exists(ctx, todoID, actingID)
	if err != nil {
		return nil, internalError(s.logger, "failed to check manager membership", err)
	}
	if !isManager {
		s.logger.DebugContext(ctx, "comment rejected: not a manager",
			slog.Int64("todo_id", todoID),
			slog.Int64("account_id", actingID))
		return nil, domain.ErrNotManager
	}

	comment, err := domain.NewComment(contents, actingID, todoID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, internalError(s.logger, "failed to create comment", err)
	}
	return comment, nil
}

// ListComments implements CommentService.
func (s *CommentServiceImpl) ListComments(ctx context.Context, todoID int64) ([]*domain.Comment, error) {
	if err := s.requireTodo(ctx, todoID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, internalError(s.logger, "failed to list comments", err)
	}
	return comments, nil
}

// DeleteAllComments implements CommentService.
func (s *CommentServiceImpl) DeleteAllComments(ctx context.Context, todoID int64) (int64, error) {
	if err := s.requireTodo(ctx, todoID); err != nil {
		return 0, err
	}
	n, err := s.comments.DeleteByTodo(ctx, todoID)
	if err != nil {
		return 0, internalError(s.logger, "failed to delete comments", err)
	}

	s.logger.InfoContext(ctx, "comments deleted",
		slog.Int64("todo_id", todoID),
		slog.Int64("count", n))
	return n, nil
}

func (s *CommentServiceImpl) requireTodo(ctx context.Context, todoID int64) error {
	if _, err := s.todos.GetByID(ctx, todoID); err != nil {
		if errors.Is(err, store.ErrTodoNotFound) {
			return domain.ErrTodoNotFound
		}
		return internalError(s.logger, "failed to look up todo", err)
	}
	return nil
}
