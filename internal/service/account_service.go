package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// AccountService provides account lookup and administration.
type AccountService interface {
	// GetAccount returns an account or domain.ErrAccountNotFound.
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)

	// ChangeRole sets the role of an account. Fails with
	// domain.ErrAccountNotFound, then domain.ErrInvalidRole.
	ChangeRole(ctx context.Context, accountID int64, role string) (*domain.Account, error)
}

// AccountServiceImpl implements AccountService.
type AccountServiceImpl struct {
	accounts store.AccountStore
	logger   *slog.Logger
}

var _ AccountService = (*AccountServiceImpl)(nil)

// NewAccountService creates an AccountService.
func NewAccountService(accounts store.AccountStore, logger *slog.Logger) (*AccountServiceImpl, error) {
	if accounts == nil {
		return nil, errors.New("account store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountServiceImpl{
		accounts: accounts,
		logger:   logger.With(slog.String("component", "account_service")),
	}, nil
}

// GetAccount implements AccountService.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, internalError(s.logger, "failed to retrieve account", err)
	}
	return account, nil
}

// ChangeRole implements AccountService. Only the role column is written, so
// a password changed since the lookup is kept.
func (s *AccountServiceImpl) ChangeRole(ctx context.Context, accountID int64, roleName string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(roleName)
	if err != nil {
		return nil, err
	}

	updated, err := s.accounts.UpdateRole(ctx, accountID, role)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, internalError(s.logger, "failed to update account role", err)
	}

	s.logger.InfoContext(ctx, "account role changed",
		slog.Int64("account_id", accountID),
		slog.String("from", account.Role.String()),
		slog.String("to", role.String()))
	return updated, nil
}
