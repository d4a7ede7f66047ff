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

// MockCommentStore implements store.CommentStore for testing.
type MockCommentStore struct {
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	ListByTodoFn   func(ctx context.Context, todoID int64) ([]*domain.Comment, error)
	DeleteByTodoFn func(ctx context.Context, todoID int64) (int64, error)

	mu       sync.Mutex
	Comments map[int64]*domain.Comment
	nextID   int64
}

var _ store.CommentStore = (*MockCommentStore)(nil)

// NewMockCommentStore creates an empty in-memory comment store.
func NewMockCommentStore() *MockCommentStore {
	return &MockCommentStore{Comments: make(map[int64]*domain.Comment)}
}

// Create implements store.CommentStore.
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	comment.ID = m.nextID
	comment.CreatedAt = time.Now().UTC()
	c := *comment
	m.Comments[c.ID] = &c
	return nil
}

// ListByTodo implements store.CommentStore.
func (m *MockCommentStore) ListByTodo(ctx context.Context, todoID int64) ([]*domain.Comment, error) {
	if m.ListByTodoFn != nil {
		return m.ListByTodoFn(ctx, todoID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Comment{}
	for _, c := range m.Comments {
		if c.TodoID == todoID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteByTodo implements store.CommentStore.
func (m *MockCommentStore) DeleteByTodo(ctx context.Context, todoID int64) (int64, error) {
	if m.DeleteByTodoFn != nil {
		return m.DeleteByTodoFn(ctx, todoID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, c := range m.Comments {
		if c.TodoID == todoID {
			delete(m.Comments, id)
			n++
		}
	}
	return n, nil
}

// WithTx implements store.CommentStore.
func (m *MockCommentStore) WithTx(*sqlx.Tx) store.CommentStore {
	return m
}
