package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasks-api/internal/api"
	apimw "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/service/manager"
	"github.com/phrazzld/tasks-api/internal/store"
)

// dependencies are the storage components the application is built on.
type dependencies struct {
	accounts store.AccountStore
	todos    store.TodoStore
	managers store.ManagerStore
	comments store.CommentStore
	tx       store.TxRunner
}

// postgresDependencies builds the Postgres-backed stores over db.
func postgresDependencies(db *sqlx.DB, log *slog.Logger) dependencies {
	return dependencies{
		accounts: postgres.NewPostgresAccountStore(db, log),
		todos:    postgres.NewPostgresTodoStore(db, log),
		managers: postgres.NewPostgresManagerStore(db, log),
		comments: postgres.NewPostgresCommentStore(db, log),
		tx:       store.NewTxRunner(db),
	}
}

// application holds the wired services and handlers.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	metrics *metrics.Registry
	guard   *apimw.AccessGuard

	authHandler    *api.AuthHandler
	accountHandler *api.AccountHandler
	todoHandler    *api.TodoHandler
	managerHandler *api.ManagerHandler
	commentHandler *api.CommentHandler
}

// newApplication wires services and handlers. An unusable signing key is an
// error so that the process refuses to start.
func newApplication(cfg *config.Config, log *slog.Logger, deps dependencies) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	reg := metrics.New()

	codec, err := auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	authSvc, err := auth.NewService(deps.accounts, hasher, codec, reg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	accountSvc, err := service.NewAccountService(deps.accounts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}
	todoSvc, err := service.NewTodoService(deps.accounts, deps.todos, deps.managers, deps.tx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo service: %w", err)
	}
	commentSvc, err := service.NewCommentService(deps.todos, deps.managers, deps.comments, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment service: %w", err)
	}
	managerSvc, err := manager.NewService(deps.accounts, deps.todos, deps.managers, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create manager service: %w", err)
	}

	log.Info("application initialized",
		slog.Duration("token_lifetime", codec.Lifetime()),
		slog.Int("bcrypt_cost", hasher.Cost()))

	return &application{
		config:         cfg,
		logger:         log,
		metrics:        reg,
		guard:          apimw.NewAccessGuard(codec, reg, log),
		authHandler:    api.NewAuthHandler(authSvc, log),
		accountHandler: api.NewAccountHandler(accountSvc, log),
		todoHandler:    api.NewTodoHandler(todoSvc, log),
		managerHandler: api.NewManagerHandler(managerSvc, log),
		commentHandler: api.NewCommentHandler(commentSvc, log),
	}, nil
}
