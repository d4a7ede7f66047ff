package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Operation labels recorded in the auth attempts metric.
const (
	opSignup         = "signup"
	opSignin         = "signin"
	opChangePassword = "change_password"
)

// Service implements account signup, signin and password change.
type Service struct {
	accounts store.AccountStore
	hasher   PasswordHasher
	tokens   TokenCodec
	metrics  *metrics.Registry
	logger   *slog.Logger
}

// NewService creates an authentication service. metrics may be nil.
func NewService(
	accounts store.AccountStore,
	hasher PasswordHasher,
	tokens TokenCodec,
	m *metrics.Registry,
	logger *slog.Logger,
) (*Service, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("token codec cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		metrics:  m,
		logger:   logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Signup registers a new account and returns a token for it.
// It fails with domain.ErrDuplicateAccount when the email is taken,
// domain.ErrInvalidRole for an unknown role name and domain.ErrWeakPassword
// when the password is longer than MaxPasswordBytes.
func (s *Service) Signup(ctx context.Context, email, password, role string) (string, error) {
	token, err := s.signup(ctx, email, password, role)
	s.record(opSignup, err)
	return token, err
}

func (s *Service) signup(ctx context.Context, email, password, roleName string) (string, error) {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check email availability",
			"error", redact.Error(err))
		return "", fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		s.logger.DebugContext(ctx, "signup rejected: email already registered")
		return "", domain.ErrDuplicateAccount
	}

	role, err := domain.ParseRole(roleName)
	if err != nil {
		return "", err
	}

	if err := checkPasswordBytes(password); err != nil {
		return "", err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	account, err := domain.NewAccount(email, digest, role)
	if err != nil {
		return "", err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.DebugContext(ctx, "signup lost race on email uniqueness")
			return "", domain.ErrDuplicateAccount
		}
		s.logger.ErrorContext(ctx, "failed to create account",
			"error", redact.Error(err))
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.InfoContext(ctx, "account created",
		slog.Int64("account_id", account.ID),
		slog.String("role", account.Role.String()))

	return s.tokens.Issue(ctx, account.ID, account.Email, account.Role)
}

// Signin verifies credentials and returns a fresh token.
// Unknown email and wrong password both fail with domain.ErrInvalidCredentials.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	token, err := s.signin(ctx, email, password)
	s.record(opSignin, err)
	return token, err
}

func (s *Service) signin(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.DebugContext(ctx, "signin rejected: unknown email")
			return "", domain.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "failed to look up account",
			"error", redact.Error(err))
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.DebugContext(ctx, "signin rejected: wrong password",
			slog.Int64("account_id", account.ID))
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(ctx, account.ID, account.Email, account.Role)
}

// ChangePassword replaces the password of accountID after verifying
// oldPassword. Checks run in this order: the account exists, newPassword
// satisfies the policy, newPassword differs from the current one, and
// oldPassword matches.
func (s *Service) ChangePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	err := s.changePassword(ctx, accountID, oldPassword, newPassword)
	s.record(opChangePassword, err)
	return err
}

func (s *Service) changePassword(ctx context.Context, accountID int64, oldPassword, newPassword string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	if s.hasher.Verify(newPassword, account.PasswordHash) {
		return domain.ErrSamePassword
	}

	if !s.hasher.Verify(oldPassword, account.PasswordHash) {
		s.logger.DebugContext(ctx, "password change rejected: old password mismatch",
			slog.Int64("account_id", accountID))
		return domain.ErrInvalidCredentials
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePassword(ctx, accountID, digest); err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		s.logger.ErrorContext(ctx, "failed to store new password",
			"error", redact.Error(err),
			slog.Int64("account_id", accountID))
		return fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.Int64("account_id", accountID))
	return nil
}

func (s *Service) record(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		result = "rejected"
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrNotFound):
		result = "denied"
	default:
		result = "error"
	}
	s.metrics.AuthAttempt(operation, result)
}
