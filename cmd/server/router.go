package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apimw "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Audited administrator actions.
const (
	auditChangeRole     = "change_role"
	auditDeleteComments = "delete_comments"
)

// setupRouter registers every route with its middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimw.Trace(app.logger))

	r.Get("/health", app.health)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Post("/auth/signup", app.authHandler.Signup)
	r.Post("/auth/signin", app.authHandler.Signin)

	r.Group(func(r chi.Router) {
		r.Use(app.guard.Authenticate)

		r.Get("/users/{userID}", app.accountHandler.GetAccount)
		r.Put("/users/password", app.authHandler.ChangePassword)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", app.todoHandler.ListTodos)
			r.Post("/", app.todoHandler.CreateTodo)

			r.Route("/{todoID}", func(r chi.Router) {
				r.Get("/", app.todoHandler.GetTodo)

				r.Get("/managers", app.managerHandler.ListManagers)
				r.Post("/managers", app.managerHandler.AssignManager)
				r.Delete("/managers/{managerID}", app.managerHandler.RemoveManager)

				r.Get("/comments", app.commentHandler.ListComments)
				r.Post("/comments", app.commentHandler.AddComment)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.guard.RequireRole(domain.RoleAdmin))

			r.With(app.guard.Audit(auditChangeRole)).
				Patch("/users/{userID}", app.accountHandler.ChangeRole)
			r.With(app.guard.Audit(auditDeleteComments)).
				Delete("/todos/{todoID}/comments", app.commentHandler.DeleteAllComments)
		})
	})

	return r
}

func (app *application) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
