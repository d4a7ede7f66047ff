package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/metrics"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

const bearerPrefix = "Bearer "

// Client-facing messages.
const (
	msgMissingToken = "Missing authorization token"
	msgUnauthorized = "Unauthorized"
	msgForbidden    = "Forbidden"
)

// TokenVerifier is the part of auth.TokenCodec the guard needs.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// AccessGuard authenticates requests, enforces roles and records access
// audit entries for privileged routes.
type AccessGuard struct {
	tokens  TokenVerifier
	metrics *metrics.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// NewAccessGuard creates an AccessGuard. m may be nil.
func NewAccessGuard(tokens TokenVerifier, m *metrics.Registry, log *slog.Logger) *AccessGuard {
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AccessGuard{
		tokens:  tokens,
		metrics: m,
		logger:  log.With(slog.String("component", "access_guard")),
		now:     time.Now,
	}
}

// Authenticate verifies the bearer token and stores the caller's
// shared.Identity in the request context. Expired and invalid tokens get the
// same response.
func (g *AccessGuard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			g.metrics.TokenVerification(metrics.ResultMissing)
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgMissingToken, domain.ErrMissingToken)
			return
		}

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			g.metrics.TokenVerification(metrics.ResultInvalid)
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgUnauthorized, auth.ErrInvalidToken)
			return
		}

		claims, err := g.tokens.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				g.metrics.TokenVerification(metrics.ResultExpired)
			} else {
				g.metrics.TokenVerification(metrics.ResultInvalid)
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgUnauthorized, err)
			return
		}
		g.metrics.TokenVerification(metrics.ResultOK)

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			AccountID: claims.AccountID,
			Email:     claims.Email,
			Role:      claims.Role,
		})
		log := logger.FromContextOrDefault(ctx, g.logger).With(slog.Int64("account_id", claims.AccountID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose role differs from role. It must run
// after Authenticate.
func (g *AccessGuard) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := shared.IdentityFromContext(r.Context())
			if !ok {
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgUnauthorized, domain.ErrUnauthorized)
				return
			}
			if id.Role != role {
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, msgForbidden, domain.ErrForbidden,
					shared.WithElevatedLogLevel())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Audit records an entry before the handler runs and another when it
// returns, including when it panics. The panic is re-raised.
func (g *AccessGuard) Audit(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := shared.IdentityFromContext(r.Context())
			log := logger.FromContextOrDefault(r.Context(), g.logger)
			started := g.now()

			attrs := []slog.Attr{
				slog.String("action", action),
				slog.Int64("actor_id", id.AccountID),
				slog.String("actor_role", id.Role.String()),
				slog.String("method", r.Method),
				slog.String("target", r.URL.Path),
				slog.Any("params", routeParams(r)),
			}

			g.metrics.AuditEvent(action, metrics.PhaseEnter)
			log.LogAttrs(r.Context(), slog.LevelInfo, "access audit",
				append(attrs,
					slog.String("phase", metrics.PhaseEnter),
					slog.Time("at", started))...)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			panicked := true
			defer func() {
				status := ww.Status()
				outcome := "completed"
				if panicked {
					outcome = "panic"
					if status == 0 {
						status = http.StatusInternalServerError
					}
				}
				if status == 0 {
					status = http.StatusOK
				}

				finished := g.now()
				g.metrics.AuditEvent(action, metrics.PhaseExit)
				log.LogAttrs(r.Context(), slog.LevelInfo, "access audit",
					append(attrs,
						slog.String("phase", metrics.PhaseExit),
						slog.Time("at", finished),
						slog.Int("status", status),
						slog.String("outcome", outcome),
						slog.Duration("elapsed", finished.Sub(started)))...)

				if panicked {
					if rec := recover(); rec != nil {
						log.Error("handler panicked during audited request",
							slog.String("action", action),
							slog.String("panic", redact.String(formatPanic(rec))))
						panic(rec)
					}
				}
			}()

			next.ServeHTTP(ww, r)
			panicked = false
		})
	}
}

func routeParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return params
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

func formatPanic(rec interface{}) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(rec)
}
