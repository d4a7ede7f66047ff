// Package manager enforces the ownership rules for assigning and removing
// the managers of a todo.
//
// Only the creator of a todo may change its managers, and the creator can
// never be assigned as a manager of their own todo. Checks run in a fixed
// order so that callers always see the same error for the same state.
package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Service implements manager assignment and removal.
type Service struct {
	accounts store.AccountStore
	todos    store.TodoStore
	managers store.ManagerStore
	logger   *slog.Logger
}

// NewService creates a manager service.
func NewService(
	accounts store.AccountStore,
	todos store.TodoStore,
	managers store.ManagerStore,
	logger *slog.Logger,
) (*Service, error) {
	if accounts == nil || todos == nil || managers == nil {
		return nil, errors.New("manager service requires account, todo and manager stores")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accounts: accounts,
		todos:    todos,
		managers: managers,
		logger:   logger.With(slog.String("component", "manager_service")),
	}, nil
}

// AssignManager makes candidateID a manager of todoID on behalf of actingID.
// created is false when the candidate already managed the todo, in which case
// the existing assignment is returned.
//
// Checks, in order: the todo exists, it has a creator, actingID is that
// creator, the candidate account exists, and the candidate is not the creator.
func (s *Service) AssignManager(ctx context.Context, actingID, todoID, candidateID int64) (manager *domain.Manager, created bool, err error) {
	todo, err := s.creatorOwnedTodo(ctx, actingID, todoID)
	if err != nil {
		return nil, false, err
	}

	if _, err := s.accounts.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, false, domain.ErrTargetAccountNotFound
		}
		return nil, false, s.internal(ctx, "failed to look up candidate account", err)
	}

	if todo.CreatedBy(candidateID) {
		return nil, false, domain.ErrSelfAssignment
	}

	exists, err := s.managers.Exists(ctx, todoID, candidateID)
	if err != nil {
		return nil, false, s.internal(ctx, "failed to check manager assignment", err)
	}
	if exists {
		existing, err := s.existingAssignment(ctx, todoID, candidateID)
		return existing, false, err
	}

	manager = domain.NewManager(candidateID, todoID)
	if err := s.managers.Create(ctx, manager); err != nil {
		if errors.Is(err, store.ErrManagerExists) {
			s.logger.DebugContext(ctx, "manager insert lost race on assignment uniqueness",
				slog.Int64("todo_id", todoID),
				slog.Int64("account_id", candidateID))
			existing, err := s.existingAssignment(ctx, todoID, candidateID)
			return existing, false, err
		}
		return nil, false, s.internal(ctx, "failed to create manager", err)
	}

	s.logger.InfoContext(ctx, "manager assigned",
		slog.Int64("todo_id", todoID),
		slog.Int64("manager_id", manager.ID),
		slog.Int64("account_id", candidateID))
	return manager, true, nil
}

func (s *Service) existingAssignment(ctx context.Context, todoID, accountID int64) (*domain.Manager, error) {
	managers, err := s.managers.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, s.internal(ctx, "failed to list managers", err)
	}
	for _, m := range managers {
		if m.AccountID == accountID {
			return m, nil
		}
	}
	return nil, s.internal(ctx, "failed to find existing manager",
		fmt.Errorf("account %d: %w", accountID, store.ErrManagerNotFound))
}

// RemoveManager deletes the assignment managerID from todoID on behalf of actingID.
//
// Checks, in order: the acting account exists, the todo exists, it has a
// creator, actingID is that creator, the assignment exists, and the
// assignment belongs to todoID.
func (s *Service) RemoveManager(ctx context.Context, actingID, todoID, managerID int64) error {
	if _, err := s.accounts.GetByID(ctx, actingID); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return s.internal(ctx, "failed to look up acting account", err)
	}

	if _, err := s.creatorOwnedTodo(ctx, actingID, todoID); err != nil {
		return err
	}

	manager, err := s.managers.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, store.ErrManagerNotFound) {
			return domain.ErrManagerNotFound
		}
		return s.internal(ctx, "failed to look up manager", err)
	}

	if !manager.BelongsTo(todoID) {
		return domain.ErrManagerMismatch
	}

	if err := s.managers.Delete(ctx, manager); err != nil {
		if errors.Is(err, store.ErrManagerNotFound) {
			return domain.ErrManagerNotFound
		}
		return s.internal(ctx, "failed to delete manager", err)
	}

	s.logger.InfoContext(ctx, "manager removed",
		slog.Int64("todo_id", todoID),
		slog.Int64("manager_id", managerID))
	return nil
}

// ListManagers returns the assignments of todoID.
func (s *Service) ListManagers(ctx context.Context, todoID int64) ([]*domain.Manager, error) {
	if _, err := s.getTodo(ctx, todoID); err != nil {
		return nil, err
	}
	managers, err := s.managers.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, s.internal(ctx, "failed to list managers", err)
	}
	return managers, nil
}

func (s *Service) creatorOwnedTodo(ctx context.Context, actingID, todoID int64) (*domain.Todo, error) {
	todo, err := s.getTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !todo.HasCreator() {
		return nil, domain.ErrInvalidCreator
	}
	if !todo.CreatedBy(actingID) {
		return nil, domain.ErrNotCreator
	}
	return todo, nil
}

func (s *Service) getTodo(ctx context.Context, todoID int64) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, store.ErrTodoNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, s.internal(ctx, "failed to look up todo", err)
	}
	return todo, nil
}

func (s *Service) internal(ctx context.Context, msg string, err error) error {
	s.logger.ErrorContext(ctx, msg, "error", redact.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
