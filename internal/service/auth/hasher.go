package auth

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into salted digests and checks
// candidates against them.
type PasswordHasher interface {
	// Hash returns a digest of plaintext. Two calls with the same input
	// return different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch or an
	// unparseable digest is false, never an error.
	Verify(plaintext, digest string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a hasher with the given work factor.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the effective work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher.Hash. Input longer than MaxPasswordBytes
// fails with a *domain.PasswordPolicyError.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &domain.PasswordPolicyError{Unmet: []domain.PasswordRule{domain.RuleMaxBytes}}
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify implements PasswordHasher.Verify. bcrypt compares in constant time.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
