package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Page size limits for todo listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TodoService provides todo creation and lookup.
type TodoService interface {
	// CreateTodo stores a todo created by creatorID and registers the creator
	// as its first manager in the same transaction.
	CreateTodo(ctx context.Context, creatorID int64, title, contents string) (*domain.Todo, error)

	// GetTodo returns a todo or domain.ErrTodoNotFound.
	GetTodo(ctx context.Context, todoID int64) (*domain.Todo, error)

	// ListTodos returns a 1-based page of todos, most recently updated first.
	ListTodos(ctx context.Context, page, size int) (domain.Page[*domain.Todo], error)
}

// TodoServiceImpl implements TodoService.
type TodoServiceImpl struct {
	accounts store.AccountStore
	todos    store.TodoStore
	managers store.ManagerStore
	tx       store.TxRunner
	logger   *slog.Logger
}

var _ TodoService = (*TodoServiceImpl)(nil)

// NewTodoService creates a TodoService.
func NewTodoService(
	accounts store.AccountStore,
	todos store.TodoStore,
	managers store.ManagerStore,
	tx store.TxRunner,
	logger *slog.Logger,
) (*TodoServiceImpl, error) {
	if accounts == nil || todos == nil || managers == nil || tx == nil {
		return nil, errors.New("todo service requires account, todo and manager stores and a transaction runner")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoServiceImpl{
		accounts: accounts,
		todos:    todos,
		managers: managers,
		tx:       tx,
		logger:   logger.With(slog.String("component", "todo_service")),
	}, nil
}

// CreateTodo implements TodoService.
func (s *TodoServiceImpl) CreateTodo(
	ctx context.Context,
	creatorID int64,
	title, contents string,
) (*domain.Todo, error) {
	if _, err := s.accounts.GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, internalError(s.logger, "failed to look up creator", err)
	}

	todo, err := domain.NewTodo(title, contents, creatorID)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.todos.WithTx(tx).Create(ctx, todo); err != nil {
			return err
		}
		return s.managers.WithTx(tx).Create(ctx, domain.NewManager(creatorID, todo.ID))
	})
	if err != nil {
		return nil, internalError(s.logger, "failed to create todo", err)
	}

	s.logger.InfoContext(ctx, "todo created",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("creator_id", creatorID))
	return todo, nil
}

// GetTodo implements TodoService.
func (s *TodoServiceImpl) GetTodo(ctx context.Context, todoID int64) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, store.ErrTodoNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, internalError(s.logger, "failed to retrieve todo", err)
	}
	return todo, nil
}

// ListTodos implements TodoService. A page below 1 is treated as 1, a size
// below 1 as DefaultPageSize, and sizes above MaxPageSize are capped.
func (s *TodoServiceImpl) ListTodos(ctx context.Context, page, size int) (domain.Page[*domain.Todo], error) {
	if page < 1 {
		page = 1
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	total, err := s.todos.Count(ctx)
	if err != nil {
		return domain.Page[*domain.Todo]{}, internalError(s.logger, "failed to count todos", err)
	}

	todos, err := s.todos.List(ctx, (page-1)*size, size)
	if err != nil {
		return domain.Page[*domain.Todo]{}, internalError(s.logger, "failed to list todos", err)
	}

	return domain.NewPage(todos, page, size, total), nil
}
