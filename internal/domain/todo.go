package domain

import (
	"strings"
	"time"
)

// Todo is a task owned by the account that created it. CreatorID is zero when
// the creator reference is missing.
type Todo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTodo builds an unsaved todo created by creatorID.
func NewTodo(title, contents string, creatorID int64) (*Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyContent
	}
	now := time.Now().UTC()
	return &Todo{
		Title:     title,
		Contents:  contents,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasCreator reports whether the todo carries a creator reference.
func (t *Todo) HasCreator() bool {
	return t.CreatorID != 0
}

// CreatedBy reports whether accountID is the creator of the todo.
func (t *Todo) CreatedBy(accountID int64) bool {
	return t.HasCreator() && t.CreatorID == accountID
}

// Manager records that an account manages a todo.
type Manager struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	TodoID    int64     `json:"todo_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewManager builds an unsaved manager assignment.
func NewManager(accountID, todoID int64) *Manager {
	return &Manager{
		AccountID: accountID,
		TodoID:    todoID,
		CreatedAt: time.Now().UTC(),
	}
}

// BelongsTo reports whether the assignment is for todoID.
func (m *Manager) BelongsTo(todoID int64) bool {
	return m.TodoID == todoID
}

// Comment is a note left on a todo by one of its managers.
type Comment struct {
	ID        int64     `json:"id"`
	Contents  string    `json:"contents"`
	AccountID int64     `json:"account_id"`
	TodoID    int64     `json:"todo_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment builds an unsaved comment.
func NewComment(contents string, accountID, todoID int64) (*Comment, error) {
	if strings.TrimSpace(contents) == "" {
		return nil, ErrEmptyContent
	}
	return &Comment{
		Contents:  contents,
		AccountID: accountID,
		TodoID:    todoID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPage computes page metadata for a 1-based page of the given size.
func NewPage[T any](items []T, page, size, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Page[T]{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
