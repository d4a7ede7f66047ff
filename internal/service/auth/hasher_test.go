package auth

import (
	"strings"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"valid cost", 12, 12},
		{"minimum cost", bcrypt.MinCost, bcrypt.MinCost},
		{"zero uses default", 0, bcrypt.DefaultCost},
		{"too low uses default", 3, bcrypt.DefaultCost},
		{"too high uses default", 32, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBcryptHasher(tt.cost).Cost())
		})
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("Secret123")
	require.NoError(t, err)
	second, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", first, "digest must not be the plaintext")
	assert.NotEqual(t, first, second, "each hash uses a fresh salt")
	assert.True(t, h.Verify("Secret123", first))
	assert.True(t, h.Verify("Secret123", second))
	assert.False(t, h.Verify("Secret124", first))
	assert.False(t, h.Verify("", first))
}

func TestBcryptHasher_VerifyGarbageDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("Secret123", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("Secret123", ""))
}

func TestBcryptHasher_RejectsOverlongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{"ascii", strings.Repeat("A1", 40)},
		{"multibyte under the rune limit", "A1" + strings.Repeat("가", 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.password)
			assert.ErrorIs(t, err, domain.ErrWeakPassword)

			var policyErr *domain.PasswordPolicyError
			require.ErrorAs(t, err, &policyErr)
			assert.Equal(t, []domain.PasswordRule{domain.RuleMaxBytes}, policyErr.Unmet)
		})
	}
}

func TestBcryptHasher_AcceptsExactlyMaxBytes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := "A1" + strings.Repeat("가", 23) + "x"
	require.Len(t, password, MaxPasswordBytes)

	digest, err := h.Hash(password)
	require.NoError(t, err)
	assert.True(t, h.Verify(password, digest))
}
