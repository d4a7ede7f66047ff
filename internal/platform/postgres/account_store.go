package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

var accountColumns = []string{"id", "email", "password_hash", "role", "created_at", "updated_at"}

type accountRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// PostgresAccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the AccountStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAccountStore(db store.DBTX, logger *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore interface
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// WithTx implements store.AccountStore.WithTx
func (s *PostgresAccountStore) WithTx(tx *sqlx.Tx) store.AccountStore {
	return &PostgresAccountStore{db: tx, logger: s.logger}
}

// ExistsByEmail implements store.AccountStore.ExistsByEmail
func (s *PostgresAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("accounts").
		Where(sq.Eq{"email": email}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists bool
	if err := sqlx.GetContext(ctx, s.db, &exists, query, args...); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// GetByEmail implements store.AccountStore.GetByEmail
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.getOne(ctx, sq.Eq{"email": email})
}

// GetByID implements store.AccountStore.GetByID
func (s *PostgresAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

func (s *PostgresAccountStore) getOne(ctx context.Context, pred sq.Eq) (*domain.Account, error) {
	query, args, err := psql.Select(accountColumns...).From("accounts").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row accountRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrAccountNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// Create implements store.AccountStore.Create
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	query, args, err := psql.Insert("accounts").
		Columns("email", "password_hash", "role").
		Values(account.Email, account.PasswordHash, string(account.Role)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = s.db.QueryRowxContext(ctx, query, args...).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			s.logger.DebugContext(ctx, "account insert lost email uniqueness race")
		}
		return MapUniqueViolation(err, store.ErrEmailExists)
	}

	s.logger.DebugContext(ctx, "account created", slog.Int64("account_id", account.ID))
	return nil
}

// UpdatePassword implements store.AccountStore.UpdatePassword
func (s *PostgresAccountStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := psql.Update("accounts").
		Set("password_hash", passwordHash).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrAccountNotFound)
}

// UpdateRole implements store.AccountStore.UpdateRole
func (s *PostgresAccountStore) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error) {
	query, args, err := psql.Update("accounts").
		Set("role", string(role)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(accountColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row accountRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrAccountNotFound
		}
		return nil, mapped
	}
	return row.toDomain(), nil
}
