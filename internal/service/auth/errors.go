package auth

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// Token errors. Both wrap domain.ErrUnauthorized so callers that do not
// care about the cause can treat them alike.
var (
	// ErrInvalidToken indicates a malformed token, a signature mismatch, an
	// unexpected algorithm or missing claims.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)

	// ErrExpiredToken indicates the token is past its expiry.
	ErrExpiredToken = fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
)

// ErrSigningKeyInvalid is returned at construction when the signing key is
// missing or shorter than MinSigningKeyLength.
var ErrSigningKeyInvalid = errors.New("token signing key is missing or too short")
