package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/service/manager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// harness wires the real services over in-memory stores behind a chi router.
// Requests made with an identity skip token verification.
type harness struct {
	accounts *mocks.MockAccountStore
	todos    *mocks.MockTodoStore
	managers *mocks.MockManagerStore
	comments *mocks.MockCommentStore
	hasher   *auth.BcryptHasher
	codec    *auth.HMACTokenCodec
	router   chi.Router
	logs     *logger.TestLogBuffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	buf, log := logger.NewTestLogger(t)
	h := &harness{
		accounts: mocks.NewMockAccountStore(),
		todos:    mocks.NewMockTodoStore(),
		managers: mocks.NewMockManagerStore(),
		comments: mocks.NewMockCommentStore(),
		hasher:   auth.NewBcryptHasher(bcrypt.MinCost),
		logs:     buf,
	}

	codec, err := auth.NewTokenCodec(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	}, auth.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	h.codec = codec

	authSvc, err := auth.NewService(h.accounts, h.hasher, codec, nil, log)
	require.NoError(t, err)
	accountSvc, err := service.NewAccountService(h.accounts, log)
	require.NoError(t, err)
	todoSvc, err := service.NewTodoService(h.accounts, h.todos, h.managers, &mocks.MockTxRunner{}, log)
	require.NoError(t, err)
	commentSvc, err := service.NewCommentService(h.todos, h.managers, h.comments, log)
	require.NoError(t, err)
	managerSvc, err := manager.NewService(h.accounts, h.todos, h.managers, log)
	require.NoError(t, err)

	authH := NewAuthHandler(authSvc, log)
	accountH := NewAccountHandler(accountSvc, log)
	todoH := NewTodoHandler(todoSvc, log)
	managerH := NewManagerHandler(managerSvc, log)
	commentH := NewCommentHandler(commentSvc, log)

	r := chi.NewRouter()
	r.Post("/auth/signup", authH.Signup)
	r.Post("/auth/signin", authH.Signin)
	r.Put("/users/password", authH.ChangePassword)
	r.Get("/users/{userID}", accountH.GetAccount)
	r.Patch("/admin/users/{userID}", accountH.ChangeRole)
	r.Delete("/admin/todos/{todoID}/comments", commentH.DeleteAllComments)
	r.Post("/todos", todoH.CreateTodo)
	r.Get("/todos", todoH.ListTodos)
	r.Get("/todos/{todoID}", todoH.GetTodo)
	r.Get("/todos/{todoID}/managers", managerH.ListManagers)
	r.Post("/todos/{todoID}/managers", managerH.AssignManager)
	r.Delete("/todos/{todoID}/managers/{managerID}", managerH.RemoveManager)
	r.Post("/todos/{todoID}/comments", commentH.AddComment)
	r.Get("/todos/{todoID}/comments", commentH.ListComments)
	h.router = r

	return h
}

// seedAccount stores an account whose password is "Password1".
func (h *harness) seedAccount(t *testing.T, email string, role domain.Role) *domain.Account {
	t.Helper()
	hash, err := h.hasher.Hash("Password1")
	require.NoError(t, err)
	account, err := domain.NewAccount(email, hash, role)
	require.NoError(t, err)
	return h.accounts.Seed(account)
}

func (h *harness) seedTodo(t *testing.T, creatorID int64) *domain.Todo {
	t.Helper()
	todo, err := domain.NewTodo("write docs", "", creatorID)
	require.NoError(t, err)
	h.todos.Seed(todo)
	h.managers.Seed(domain.NewManager(creatorID, todo.ID))
	return todo
}

func (h *harness) do(t *testing.T, method, path string, body interface{}, id *shared.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := shared.SetTraceID(context.Background())
	if id != nil {
		ctx = shared.WithIdentity(ctx, *id)
	}
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func as(a *domain.Account) *shared.Identity {
	return &shared.Identity{AccountID: a.ID, Email: a.Email, Role: a.Role}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[shared.ErrorResponse](t, w).Error
}
