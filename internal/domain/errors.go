package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific domain error wraps exactly one of these so the
// API layer can classify failures with errors.Is without knowing every error.
var (
	// ErrValidation marks caller-correctable input problems.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced resource that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated marks a missing or unverifiable identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrPermission marks a verified identity that may not perform the operation.
	ErrPermission = errors.New("permission denied")
)

// Validation errors.
var (
	ErrDuplicateAccount  = fmt.Errorf("%w: email is already registered", ErrValidation)
	ErrWeakPassword      = fmt.Errorf("%w: password does not satisfy the password policy", ErrValidation)
	ErrSamePassword      = fmt.Errorf("%w: new password must differ from the current password", ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrSelfAssignment    = fmt.Errorf("%w: todo creator cannot be assigned as a manager", ErrValidation)
	ErrManagerMismatch   = fmt.Errorf("%w: manager is not assigned to this todo", ErrValidation)
	ErrNotManager        = fmt.Errorf("%w: account is not a manager of this todo", ErrValidation)
	ErrInvalidEmail      = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyContent      = fmt.Errorf("%w: content cannot be empty", ErrValidation)
	ErrEmptyPasswordHash = fmt.Errorf("%w: password hash cannot be empty", ErrValidation)
)

// Not-found errors.
var (
	ErrAccountNotFound       = fmt.Errorf("%w: account", ErrNotFound)
	ErrTodoNotFound          = fmt.Errorf("%w: todo", ErrNotFound)
	ErrManagerNotFound       = fmt.Errorf("%w: manager", ErrNotFound)
	ErrTargetAccountNotFound = fmt.Errorf("%w: manager account", ErrNotFound)
)

// Authentication errors. ErrInvalidCredentials covers both an unknown email
// and a wrong password; ErrUnauthorized covers both expired and forged tokens.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrMissingToken       = fmt.Errorf("%w: authentication token is missing", ErrUnauthenticated)
	ErrUnauthorized       = fmt.Errorf("%w: authentication token is invalid or expired", ErrUnauthenticated)
)

// Authorization errors.
var (
	ErrForbidden      = fmt.Errorf("%w: administrator role required", ErrPermission)
	ErrNotCreator     = fmt.Errorf("%w: only the todo creator may manage its managers", ErrPermission)
	ErrInvalidCreator = fmt.Errorf("%w: todo creator is missing", ErrPermission)
)

// PasswordRule names a single requirement of the password policy.
type PasswordRule string

// Password policy rules, in the order they are reported.
const (
	RuleMinLength PasswordRule = "at least 8 characters"
	RuleMaxBytes  PasswordRule = "at most 72 bytes"
	RuleDigit     PasswordRule = "at least one digit"
	RuleUppercase PasswordRule = "at least one uppercase letter"
)

// PasswordPolicyError lists every rule a candidate password failed.
// It wraps ErrWeakPassword.
type PasswordPolicyError struct {
	Unmet []PasswordRule
}

// Error implements the error interface.
func (e *PasswordPolicyError) Error() string {
	msg := "password must contain "
	for i, rule := range e.Unmet {
		switch {
		case i == 0:
		case i == len(e.Unmet)-1:
			msg += " and "
		default:
			msg += ", "
		}
		msg += string(rule)
	}
	return msg
}

// Unwrap returns ErrWeakPassword.
func (e *PasswordPolicyError) Unwrap() error {
	return ErrWeakPassword
}
