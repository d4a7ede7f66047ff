package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TodoStore persists todos.
type TodoStore interface {
	// Create inserts the todo and sets its ID.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID returns the todo with the given id.
	// Returns ErrTodoNotFound if none exists.
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)

	// List returns todos ordered by most recently updated first.
	List(ctx context.Context, offset, limit int) ([]*domain.Todo, error)

	// Count returns the total number of todos.
	Count(ctx context.Context) (int, error)

	// WithTx returns a store bound to tx.
	WithTx(tx *sqlx.Tx) TodoStore
}
