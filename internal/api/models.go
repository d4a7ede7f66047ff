package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// SignupRequest defines the payload for the signup endpoint. Role is USER
// or ADMIN, case-insensitive.
type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"required"`
}

// SigninRequest defines the payload for the signin endpoint.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and signin.
type TokenResponse struct {
	// BearerToken is ready to use as an Authorization header value.
	BearerToken string `json:"bearerToken"`
}

// ChangePasswordRequest defines the payload for changing the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

// ChangeRoleRequest defines the payload for the admin role change endpoint.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// CreateTodoRequest defines the payload for creating a todo.
type CreateTodoRequest struct {
	Title    string `json:"title"    validate:"required,max=255"`
	Contents string `json:"contents"`
}

// AssignManagerRequest names the account to assign as a manager.
type AssignManagerRequest struct {
	AccountID int64 `json:"accountId" validate:"required,gt=0"`
}

// CreateCommentRequest defines the payload for commenting on a todo.
type CreateCommentRequest struct {
	Contents string `json:"contents"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TodoResponse is the public view of a todo.
type TodoResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Contents  string    `json:"contents"`
	CreatorID int64     `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TodoPageResponse is one page of todos.
type TodoPageResponse struct {
	Items      []TodoResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

// ManagerResponse is a manager assignment.
type ManagerResponse struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	TodoID    int64     `json:"todoId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentResponse is a comment on a todo.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Contents  string    `json:"contents"`
	AccountID int64     `json:"accountId"`
	TodoID    int64     `json:"todoId"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeleteCommentsResponse reports how many comments were removed.
type DeleteCommentsResponse struct {
	Deleted int64 `json:"deleted"`
}

func accountToResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func todoToResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Contents:  t.Contents,
		CreatorID: t.CreatorID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func todoPageToResponse(p domain.Page[*domain.Todo]) TodoPageResponse {
	items := make([]TodoResponse, 0, len(p.Items))
	for _, t := range p.Items {
		items = append(items, todoToResponse(t))
	}
	return TodoPageResponse{
		Items:      items,
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func managerToResponse(m *domain.Manager) ManagerResponse {
	return ManagerResponse{
		ID:        m.ID,
		AccountID: m.AccountID,
		TodoID:    m.TodoID,
		CreatedAt: m.CreatedAt,
	}
}

func managersToResponse(ms []*domain.Manager) []ManagerResponse {
	out := make([]ManagerResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, managerToResponse(m))
	}
	return out
}

func commentToResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Contents:  c.Contents,
		AccountID: c.AccountID,
		TodoID:    c.TodoID,
		CreatedAt: c.CreatedAt,
	}
}

func commentsToResponse(cs []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, commentToResponse(c))
	}
	return out
}
