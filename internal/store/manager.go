package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ManagerStore persists manager assignments.
type ManagerStore interface {
	// Create inserts the assignment and sets its ID.
	// Returns ErrManagerExists when the account already manages the todo.
	Create(ctx context.Context, manager *domain.Manager) error

	// GetByID returns the assignment with the given id.
	// Returns ErrManagerNotFound if none exists.
	GetByID(ctx context.Context, id int64) (*domain.Manager, error)

	// ListByTodo returns the assignments of a todo in creation order.
	ListByTodo(ctx context.Context, todoID int64) ([]*domain.Manager, error)

	// Exists reports whether accountID manages todoID.
	Exists(ctx context.Context, todoID, accountID int64) (bool, error)

	// Delete removes the assignment.
	// Returns ErrManagerNotFound if it no longer exists.
	Delete(ctx context.Context, manager *domain.Manager) error

	// WithTx returns a store bound to tx.
	WithTx(tx *sqlx.Tx) ManagerStore
}
