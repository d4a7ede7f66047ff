package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTodoStore implements store.TodoStore for testing.
type MockTodoStore struct {
	CreateFn  func(ctx context.Context, todo *domain.Todo) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Todo, error)
	ListFn    func(ctx context.Context, offset, limit int) ([]*domain.Todo, error)
	CountFn   func(ctx context.Context) (int, error)

	mu     sync.Mutex
	Todos  map[int64]*domain.Todo
	nextID int64
}

var _ store.TodoStore = (*MockTodoStore)(nil)

// NewMockTodoStore creates an empty in-memory todo store.
func NewMockTodoStore() *MockTodoStore {
	return &MockTodoStore{Todos: make(map[int64]*domain.Todo)}
}

// Seed stores todo as is, assigning an ID when it has none.
func (m *MockTodoStore) Seed(todo *domain.Todo) *domain.Todo {
	m.mu.Lock()
	defer m.mu.Unlock()
	if todo.ID == 0 {
		m.nextID++
		todo.ID = m.nextID
	} else if todo.ID > m.nextID {
		m.nextID = todo.ID
	}
	m.Todos[todo.ID] = todo
	return todo
}

// Create implements store.TodoStore.
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, todo)
	}
	now := time.Now().UTC()
	todo.ID = 0
	todo.CreatedAt, todo.UpdatedAt = now, now
	c := *todo
	m.Seed(&c)
	todo.ID = c.ID
	return nil
}

// GetByID implements store.TodoStore.
func (m *MockTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.Todos[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, store.ErrTodoNotFound
}

// List implements store.TodoStore.
func (m *MockTodoStore) List(ctx context.Context, offset, limit int) ([]*domain.Todo, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]*domain.Todo, 0, len(m.Todos))
	for _, t := range m.Todos {
		c := *t
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if offset >= len(all) {
		return []*domain.Todo{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count implements store.TodoStore.
func (m *MockTodoStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Todos), nil
}

// WithTx implements store.TodoStore.
func (m *MockTodoStore) WithTx(*sqlx.Tx) store.TodoStore {
	return m
}
