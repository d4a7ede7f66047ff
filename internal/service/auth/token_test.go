package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

func newTestCodec(t *testing.T, secret string, now func() time.Time) *HMACTokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testAuthConfig(secret), WithClock(now))
	require.NoError(t, err)
	return codec
}

func clockAt(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestNewTokenCodec_RejectsShortKey(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"missing", ""},
		{"short", "too-short"},
		{"one byte short", strings.Repeat("k", MinSigningKeyLength-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenCodec(testAuthConfig(tt.secret))
			assert.ErrorIs(t, err, ErrSigningKeyInvalid)
		})
	}

	_, err := NewTokenCodec(testAuthConfig(strings.Repeat("k", MinSigningKeyLength)))
	assert.NoError(t, err)
}

func TestHMACTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, testSecret, clockAt(fixedTime))

	token, err := codec.Issue(context.Background(), 42, "a@example.com", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestHMACTokenCodec_Deterministic(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, testSecret, clockAt(fixedTime))
	other := newTestCodec(t, testSecret, clockAt(fixedTime))

	first, err := codec.Issue(context.Background(), 7, "b@example.com", domain.RoleUser)
	require.NoError(t, err)
	second, err := other.Issue(context.Background(), 7, "b@example.com", domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	third, err := codec.IssueAt(context.Background(), 7, "b@example.com", domain.RoleUser, fixedTime.Add(time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHMACTokenCodec_Expiry(t *testing.T) {
	t.Parallel()
	issuer := newTestCodec(t, testSecret, clockAt(fixedTime))
	token, err := issuer.Issue(context.Background(), 1, "c@example.com", domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"at issuance", fixedTime, nil},
		{"one second before expiry", fixedTime.Add(time.Hour - time.Second), nil},
		{"at expiry", fixedTime.Add(time.Hour), ErrExpiredToken},
		{"long after expiry", fixedTime.Add(48 * time.Hour), ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newTestCodec(t, testSecret, clockAt(tt.at))
			_, err := verifier.Verify(context.Background(), token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestHMACTokenCodec_IssueAtInThePast(t *testing.T) {
	codec := newTestCodec(t, testSecret, clockAt(fixedTime))

	token, err := codec.IssueAt(context.Background(), 1, "d@example.com", domain.RoleUser, fixedTime.Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = codec.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestHMACTokenCodec_SingleBitTamper(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, testSecret, clockAt(fixedTime))
	token, err := codec.Issue(context.Background(), 5, "e@example.com", domain.RoleUser)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		b := []byte(token)
		b[i] ^= 0x01
		tampered := string(b)
		if tampered == token {
			continue
		}

		claims, err := codec.Verify(context.Background(), tampered)
		lastOfSegment := i == len(token)-1 || token[i+1] == '.'
		if err == nil && lastOfSegment {
			// The low bits of the last base64url character of a segment
			// can be padding that decodes to the same bytes.
			require.Equal(t, int64(5), claims.AccountID, "byte %d", i)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d", i)
	}
}

func TestHMACTokenCodec_InvalidTokens(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(t, testSecret, clockAt(fixedTime))
	wrongKey := newTestCodec(t, wrongSecret, clockAt(fixedTime))

	foreign, err := wrongKey.Issue(context.Background(), 5, "f@example.com", domain.RoleUser)
	require.NoError(t, err)

	noneAlg := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		AccountID: 5,
		Role:      "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(fixedTime),
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	})
	unsigned, err := noneAlg.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		AccountID:        5,
		Role:             "USER",
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(fixedTime)},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		AccountID: 5,
		Role:      "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(fixedTime),
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"wrong key", foreign},
		{"none algorithm", unsigned},
		{"missing expiry", noExpiry},
		{"unknown role", badRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
