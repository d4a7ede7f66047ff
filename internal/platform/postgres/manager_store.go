package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

var managerColumns = []string{"id", "account_id", "todo_id", "created_at"}

type managerRow struct {
	ID        int64     `db:"id"`
	AccountID int64     `db:"account_id"`
	TodoID    int64     `db:"todo_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r managerRow) toDomain() *domain.Manager {
	return &domain.Manager{
		ID:        r.ID,
		AccountID: r.AccountID,
		TodoID:    r.TodoID,
		CreatedAt: r.CreatedAt,
	}
}

// PostgresManagerStore implements the store.ManagerStore interface.
type PostgresManagerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresManagerStore creates a new PostgreSQL implementation of the ManagerStore interface.
func NewPostgresManagerStore(db store.DBTX, logger *slog.Logger) *PostgresManagerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresManagerStore{
		db:     db,
		logger: logger.With(slog.String("component", "manager_store")),
	}
}

var _ store.ManagerStore = (*PostgresManagerStore)(nil)

// WithTx implements store.ManagerStore.WithTx
func (s *PostgresManagerStore) WithTx(tx *sqlx.Tx) store.ManagerStore {
	return &PostgresManagerStore{db: tx, logger: s.logger}
}

// Create implements store.ManagerStore.Create
func (s *PostgresManagerStore) Create(ctx context.Context, manager *domain.Manager) error {
	query, args, err := psql.Insert("managers").
		Columns("account_id", "todo_id").
		Values(manager.AccountID, manager.TodoID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = s.db.QueryRowxContext(ctx, query, args...).Scan(&manager.ID, &manager.CreatedAt)
	if err != nil {
		return MapUniqueViolation(err, store.ErrManagerExists)
	}
	return nil
}

// GetByID implements store.ManagerStore.GetByID
func (s *PostgresManagerStore) GetByID(ctx context.Context, id int64) (*domain.Manager, error) {
	query, args, err := psql.Select(managerColumns...).From("managers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row managerRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrManagerNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// ListByTodo implements store.ManagerStore.ListByTodo
func (s *PostgresManagerStore) ListByTodo(ctx context.Context, todoID int64) ([]*domain.Manager, error) {
	query, args, err := psql.Select(managerColumns...).
		From("managers").
		Where(sq.Eq{"todo_id": todoID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []managerRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		return nil, MapError(err)
	}

	managers := make([]*domain.Manager, 0, len(rows))
	for _, r := range rows {
		managers = append(managers, r.toDomain())
	}
	return managers, nil
}

// Exists implements store.ManagerStore.Exists
func (s *PostgresManagerStore) Exists(ctx context.Context, todoID, accountID int64) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("managers").
		Where(sq.Eq{"todo_id": todoID, "account_id": accountID}).
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

// Delete implements store.ManagerStore.Delete
func (s *PostgresManagerStore) Delete(ctx context.Context, manager *domain.Manager) error {
	query, args, err := psql.Delete("managers").Where(sq.Eq{"id": manager.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrManagerNotFound)
}
