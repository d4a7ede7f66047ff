package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// MinSigningKeyLength is the minimum HMAC key length in bytes.
const MinSigningKeyLength = 32

// Claims is the identity carried by a verified token.
type Claims struct {
	AccountID int64
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and verifies bearer tokens.
type TokenCodec interface {
	// Issue returns a signed token for the account valid from now for the
	// configured lifetime.
	Issue(ctx context.Context, accountID int64, email string, role domain.Role) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Failures are ErrInvalidToken or ErrExpiredToken.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// tokenClaims is the JWT payload. Field order is fixed so that identical
// inputs serialize to identical bytes.
type tokenClaims struct {
	AccountID int64  `json:"aid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// HMACTokenCodec implements TokenCodec with HS256 signed JWTs.
type HMACTokenCodec struct {
	signingKey []byte
	lifetime   time.Duration
	now        func() time.Time
}

var _ TokenCodec = (*HMACTokenCodec)(nil)

// Option configures an HMACTokenCodec.
type Option func(*HMACTokenCodec)

// WithClock replaces the time source used for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(c *HMACTokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a codec from the auth configuration.
// It returns ErrSigningKeyInvalid when the key is shorter than MinSigningKeyLength.
func NewTokenCodec(cfg config.AuthConfig, opts ...Option) (*HMACTokenCodec, error) {
	if len(cfg.JWTSecret) < MinSigningKeyLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrSigningKeyInvalid, MinSigningKeyLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}

	c := &HMACTokenCodec{
		signingKey: []byte(cfg.JWTSecret),
		lifetime:   time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lifetime returns the validity window of issued tokens.
func (c *HMACTokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue implements TokenCodec.Issue.
func (c *HMACTokenCodec) Issue(
	ctx context.Context,
	accountID int64,
	email string,
	role domain.Role,
) (string, error) {
	return c.IssueAt(ctx, accountID, email, role, c.now())
}

// IssueAt issues a token as if it were issued at issuedAt.
func (c *HMACTokenCodec) IssueAt(
	ctx context.Context,
	accountID int64,
	email string,
	role domain.Role,
	issuedAt time.Time,
) (string, error) {
	claims := tokenClaims{
		AccountID: accountID,
		Email:     email,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			"error", err,
			"account_id", accountID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// Verify implements TokenCodec.Verify.
func (c *HMACTokenCodec) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token verification failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token verification failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token verification failed: invalid signature", "error", err)
		default:
			log.Debug("token verification failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token verification failed: invalid claims")
		return nil, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if claims.AccountID <= 0 || claims.IssuedAt == nil || !role.Valid() {
		log.Debug("token verification failed: missing identity claims",
			"account_id", claims.AccountID,
			"role", claims.Role)
		return nil, ErrInvalidToken
	}

	return &Claims{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
