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

// MockManagerStore implements store.ManagerStore for testing.
type MockManagerStore struct {
	CreateFn     func(ctx context.Context, manager *domain.Manager) error
	GetByIDFn    func(ctx context.Context, id int64) (*domain.Manager, error)
	ListByTodoFn func(ctx context.Context, todoID int64) ([]*domain.Manager, error)
	ExistsFn     func(ctx context.Context, todoID, accountID int64) (bool, error)
	DeleteFn     func(ctx context.Context, manager *domain.Manager) error

	mu       sync.Mutex
	Managers map[int64]*domain.Manager
	nextID   int64
}

var _ store.ManagerStore = (*MockManagerStore)(nil)

// NewMockManagerStore creates an empty in-memory manager store.
func NewMockManagerStore() *MockManagerStore {
	return &MockManagerStore{Managers: make(map[int64]*domain.Manager)}
}

// Seed stores manager as is, assigning an ID when it has none.
func (m *MockManagerStore) Seed(manager *domain.Manager) *domain.Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	if manager.ID == 0 {
		m.nextID++
		manager.ID = m.nextID
	} else if manager.ID > m.nextID {
		m.nextID = manager.ID
	}
	m.Managers[manager.ID] = manager
	return manager
}

// Create implements store.ManagerStore.
func (m *MockManagerStore) Create(ctx context.Context, manager *domain.Manager) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, manager)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mg := range m.Managers {
		if mg.TodoID == manager.TodoID && mg.AccountID == manager.AccountID {
			return store.ErrManagerExists
		}
	}
	m.nextID++
	manager.ID = m.nextID
	manager.CreatedAt = time.Now().UTC()
	c := *manager
	m.Managers[c.ID] = &c
	return nil
}

// GetByID implements store.ManagerStore.
func (m *MockManagerStore) GetByID(ctx context.Context, id int64) (*domain.Manager, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if mg, ok := m.Managers[id]; ok {
		c := *mg
		return &c, nil
	}
	return nil, store.ErrManagerNotFound
}

// ListByTodo implements store.ManagerStore.
func (m *MockManagerStore) ListByTodo(ctx context.Context, todoID int64) ([]*domain.Manager, error) {
	if m.ListByTodoFn != nil {
		return m.ListByTodoFn(ctx, todoID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Manager{}
	for _, mg := range m.Managers {
		if mg.TodoID == todoID {
			c := *mg
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Exists implements store.ManagerStore.
func (m *MockManagerStore) Exists(ctx context.Context, todoID, accountID int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, todoID, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mg := range m.Managers {
		if mg.TodoID == todoID && mg.AccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

// Delete implements store.ManagerStore.
func (m *MockManagerStore) Delete(ctx context.Context, manager *domain.Manager) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, manager)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Managers[manager.ID]; !ok {
		return store.ErrManagerNotFound
	}
	delete(m.Managers, manager.ID)
	return nil
}

// WithTx implements store.ManagerStore.
func (m *MockManagerStore) WithTx(*sqlx.Tx) store.ManagerStore {
	return m
}
