package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockAccountStore implements store.AccountStore for testing.
type MockAccountStore struct {
	ExistsByEmailFn  func(ctx context.Context, email string) (bool, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.Account, error)
	GetByIDFn        func(ctx context.Context, id int64) (*domain.Account, error)
	CreateFn         func(ctx context.Context, account *domain.Account) error
	UpdatePasswordFn func(ctx context.Context, id int64, passwordHash string) error
	UpdateRoleFn     func(ctx context.Context, id int64, role domain.Role) (*domain.Account, error)

	mu       sync.Mutex
	Accounts map[int64]*domain.Account
	nextID   int64
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// NewMockAccountStore creates an empty in-memory account store.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{Accounts: make(map[int64]*domain.Account)}
}

// Seed stores account as is, assigning an ID when it has none.
func (m *MockAccountStore) Seed(account *domain.Account) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(account)
	return account
}

func (m *MockAccountStore) put(account *domain.Account) {
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	m.Accounts[account.ID] = account
}

// ExistsByEmail implements store.AccountStore.
func (m *MockAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findByEmail(email) != nil, nil
}

// GetByEmail implements store.AccountStore.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a := m.findByEmail(email); a != nil {
		c := *a
		return &c, nil
	}
	return nil, store.ErrAccountNotFound
}

// GetByID implements store.AccountStore.
func (m *MockAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Accounts[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, store.ErrAccountNotFound
}

// Create implements store.AccountStore.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findByEmail(account.Email) != nil {
		return store.ErrEmailExists
	}
	now := time.Now().UTC()
	account.ID = 0
	account.CreatedAt, account.UpdatedAt = now, now
	c := *account
	m.put(&c)
	account.ID = c.ID
	return nil
}

// UpdatePassword implements store.AccountStore.
func (m *MockAccountStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, passwordHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	c := *a
	c.PasswordHash = passwordHash
	c.UpdatedAt = time.Now().UTC()
	m.Accounts[id] = &c
	return nil
}

// UpdateRole implements store.AccountStore.
func (m *MockAccountStore) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error) {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Accounts[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	c := *a
	c.Role = role
	c.UpdatedAt = time.Now().UTC()
	m.Accounts[id] = &c
	out := c
	return &out, nil
}

// WithTx implements store.AccountStore.
func (m *MockAccountStore) WithTx(*sqlx.Tx) store.AccountStore {
	return m
}

func (m *MockAccountStore) findByEmail(email string) *domain.Account {
	for _, a := range m.Accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}
