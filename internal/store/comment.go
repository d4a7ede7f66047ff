package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CommentStore persists comments.
type CommentStore interface {
	// Create inserts the comment and sets its ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTodo returns the comments of a todo in creation order.
	ListByTodo(ctx context.Context, todoID int64) ([]*domain.Comment, error)

	// DeleteByTodo removes every comment of a todo and returns how many were removed.
	DeleteByTodo(ctx context.Context, todoID int64) (int64, error)

	// WithTx returns a store bound to tx.
	WithTx(tx *sqlx.Tx) CommentStore
}
