package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_GetAccount(t *testing.T) {
	accounts := mocks.NewMockAccountStore()
	svc, err := service.NewAccountService(accounts, nil)
	require.NoError(t, err)
	a := seedAccount(t, accounts, "a@example.com", domain.RoleUser)

	got, err := svc.GetAccount(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = svc.GetAccount(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	accounts.GetByIDFn = func(ctx context.Context, id int64) (*domain.Account, error) {
		return nil, errors.New("connection reset")
	}
	_, err = svc.GetAccount(context.Background(), a.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		id       func(a *domain.Account) int64
		role     string
		wantErr  error
		wantRole domain.Role
	}{
		{"missing account wins over bad role", func(*domain.Account) int64 { return 404 }, "ROOT", domain.ErrAccountNotFound, domain.RoleUser},
		{"invalid role", nil, "ROOT", domain.ErrInvalidRole, domain.RoleUser},
		{"promote", nil, "admin", nil, domain.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := mocks.NewMockAccountStore()
			svc, err := service.NewAccountService(accounts, nil)
			require.NoError(t, err)
			a := seedAccount(t, accounts, "a@example.com", domain.RoleUser)

			id := a.ID
			if tt.id != nil {
				id = tt.id(a)
			}
			_, err = svc.ChangeRole(ctx, id, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			stored, err := accounts.GetByID(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, stored.Role)
		})
	}
}

func TestAccountService_ChangeRoleKeepsPasswordWrittenAfterLookup(t *testing.T) {
	ctx := context.Background()
	accounts := mocks.NewMockAccountStore()
	svc, err := service.NewAccountService(accounts, nil)
	require.NoError(t, err)
	a := seedAccount(t, accounts, "a@example.com", domain.RoleUser)

	// The lookup returns the pre-change row while a password change commits.
	accounts.GetByIDFn = func(ctx context.Context, id int64) (*domain.Account, error) {
		stale := *accounts.Accounts[id]
		require.NoError(t, accounts.UpdatePassword(ctx, id, "$2a$04$rotated"))
		return &stale, nil
	}

	updated, err := svc.ChangeRole(ctx, a.ID, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "$2a$04$rotated", updated.PasswordHash)

	stored := accounts.Accounts[a.ID]
	assert.Equal(t, domain.RoleAdmin, stored.Role)
	assert.Equal(t, "$2a$04$rotated", stored.PasswordHash)
}
