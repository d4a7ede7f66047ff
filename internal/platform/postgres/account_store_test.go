package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresAccountStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresAccountStore(nil, nil) })
}

func TestPostgresAccountStore_ExistsByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM accounts WHERE email = $1 )")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.ExistsByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresAccountStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(int64(7), "a@example.com", "$2a$10$hash", "ADMIN", now, now))

		account, err := s.GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), account.ID)
		assert.Equal(t, domain.RoleAdmin, account.Role)
		assert.Equal(t, "$2a$10$hash", account.PasswordHash)
		assert.Equal(t, now, account.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := s.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestPostgresAccountStore_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(errors.New("connection reset"))

	_, err := s.GetByID(context.Background(), 9)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresAccountStore_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sets_generated_fields", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO accounts (email,password_hash,role) VALUES ($1,$2,$3) RETURNING id, created_at, updated_at")).
			WithArgs("a@example.com", "hash", "USER").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

		account := &domain.Account{Email: "a@example.com", PasswordHash: "hash", Role: domain.RoleUser}
		require.NoError(t, s.Create(ctx, account))
		assert.Equal(t, int64(1), account.ID)
		assert.Equal(t, now, account.UpdatedAt)
	})

	t.Run("unique_violation_maps_to_email_exists", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"})

		err := s.Create(ctx, &domain.Account{Email: "a@example.com", PasswordHash: "hash", Role: domain.RoleUser})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestPostgresAccountStore_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		result  driver.Result
		wantErr error
	}{
		{"updates", sqlmock.NewResult(0, 1), nil},
		{"missing", sqlmock.NewResult(0, 0), store.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresAccountStore(db, nil)

			mock.ExpectExec(regexp.QuoteMeta(
				"UPDATE accounts SET password_hash = $1, updated_at = NOW() WHERE id = $2")).
				WithArgs("newhash", int64(3)).
				WillReturnResult(tt.result)

			err := s.UpdatePassword(ctx, 3, "newhash")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPostgresAccountStore_UpdateRole(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)

	t.Run("updates and returns the stored row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE accounts SET role = $1, updated_at = NOW() WHERE id = $2 "+
				"RETURNING id, email, password_hash, role, created_at, updated_at")).
			WithArgs("ADMIN", int64(3)).
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(int64(3), "a@example.com", "freshhash", "ADMIN", now.Add(-time.Hour), now))

		account, err := s.UpdateRole(ctx, 3, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, account.Role)
		assert.Equal(t, "freshhash", account.PasswordHash)
		assert.Equal(t, now, account.UpdatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := s.UpdateRole(ctx, 404, domain.RoleUser)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestPostgresAccountStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("tx@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	exists, err := s.WithTx(tx).ExistsByEmail(context.Background(), "tx@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, tx.Commit())
}
