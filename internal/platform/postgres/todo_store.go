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

var todoColumns = []string{"id", "title", "contents", "creator_id", "created_at", "updated_at"}

type todoRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Contents  string    `db:"contents"`
	CreatorID int64     `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r todoRow) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:        r.ID,
		Title:     r.Title,
		Contents:  r.Contents,
		CreatorID: r.CreatorID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PostgresTodoStore implements the store.TodoStore interface.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

var _ store.TodoStore = (*PostgresTodoStore)(nil)

// WithTx implements store.TodoStore.WithTx
func (s *PostgresTodoStore) WithTx(tx *sqlx.Tx) store.TodoStore {
	return &PostgresTodoStore{db: tx, logger: s.logger}
}

// Create implements store.TodoStore.Create
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	query, args, err := psql.Insert("todos").
		Columns("title", "contents", "creator_id").
		Values(todo.Title, todo.Contents, todo.CreatorID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = s.db.QueryRowxContext(ctx, query, args...).
		Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// GetByID implements store.TodoStore.GetByID
func (s *PostgresTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	query, args, err := psql.Select(todoColumns...).From("todos").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row todoRow
	if err := sqlx.GetContext(ctx, s.db, &row, query, args...); err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTodoNotFound
		}
		return nil, MapError(err)
	}
	return row.toDomain(), nil
}

// List implements store.TodoStore.List
func (s *PostgresTodoStore) List(ctx context.Context, offset, limit int) ([]*domain.Todo, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("invalid page window offset=%d limit=%d", offset, limit)
	}

	query, args, err := psql.Select(todoColumns...).
		From("todos").
		OrderBy("updated_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []todoRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		return nil, MapError(err)
	}

	todos := make([]*domain.Todo, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, r.toDomain())
	}
	return todos, nil
}

// Count implements store.TodoStore.Count
func (s *PostgresTodoStore) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("todos").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, query, args...); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}
