package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Account is a registered identity. PasswordHash holds a one-way digest and
// is never serialized.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount builds an unsaved account. The ID is assigned by the store.
func NewAccount(email, passwordHash string, role Role) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the invariants of a persisted or about-to-be-persisted account.
func (a *Account) Validate() error {
	if err := validate.Var(a.Email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if a.PasswordHash == "" {
		return ErrEmptyPasswordHash
	}
	if !a.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// IsAdmin reports whether the account has the administrator role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
