package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// AccountStore persists accounts. It is the account directory consulted by
// authentication and by the ownership checks on todos.
type AccountStore interface {
	// ExistsByEmail reports whether an account with exactly this email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail returns the account with exactly this email.
	// Returns ErrAccountNotFound if none exists.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByID returns the account with the given id.
	// Returns ErrAccountNotFound if none exists.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// Create inserts the account and sets its ID.
	// Returns ErrEmailExists when the email unique index rejects the row,
	// which is the only guard against concurrent signups with one email.
	Create(ctx context.Context, account *domain.Account) error

	// UpdatePassword replaces the password hash of an existing account and
	// leaves every other column as stored.
	// Returns ErrAccountNotFound if the account does not exist.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// UpdateRole replaces the role of an existing account and returns the
	// account as stored after the write.
	// Returns ErrAccountNotFound if the account does not exist.
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error)

	// WithTx returns a store bound to tx.
	WithTx(tx *sqlx.Tx) AccountStore
}
