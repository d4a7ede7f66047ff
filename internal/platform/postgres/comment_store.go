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

type commentRow struct {
	ID        int64     `db:"id"`
	Contents  string    `db:"contents"`
	AccountID int64     `db:"account_id"`
	TodoID    int64     `db:"todo_id"`
	CreatedAt time.Time `db:"created_at"`
}

// PostgresCommentStore implements the store.CommentStore interface.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

var _ store.CommentStore = (*PostgresCommentStore)(nil)

// WithTx implements store.CommentStore.WithTx
func (s *PostgresCommentStore) WithTx(tx *sqlx.Tx) store.CommentStore {
	return &PostgresCommentStore{db: tx, logger: s.logger}
}

// Create implements store.CommentStore.Create
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	query, args, err := psql.Insert("comments").
		Columns("contents", "account_id", "todo_id").
		Values(comment.Contents, comment.AccountID, comment.TodoID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = s.db.QueryRowxContext(ctx, query, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// ListByTodo implements store.CommentStore.ListByTodo
func (s *PostgresCommentStore) ListByTodo(ctx context.Context, todoID int64) ([]*domain.Comment, error) {
	query, args, err := psql.Select("id", "contents", "account_id", "todo_id", "created_at").
		From("comments").
		Where(sq.Eq{"todo_id": todoID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []commentRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		return nil, MapError(err)
	}

	comments := make([]*domain.Comment, 0, len(rows))
	for _, r := range rows {
		comments = append(comments, &domain.Comment{
			ID:        r.ID,
			Contents:  r.Contents,
			AccountID: r.AccountID,
			TodoID:    r.TodoID,
			CreatedAt: r.CreatedAt,
		})
	}
	return comments, nil
}

// DeleteByTodo implements store.CommentStore.DeleteByTodo
func (s *PostgresCommentStore) DeleteByTodo(ctx context.Context, todoID int64) (int64, error) {
	query, args, err := psql.Delete("comments").Where(sq.Eq{"todo_id": todoID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	s.logger.DebugContext(ctx, "comments deleted",
		slog.Int64("todo_id", todoID),
		slog.Int64("count", n))
	return n, nil
}
