// Package shared holds request-scoped values and response helpers used by
// both the handlers and the middleware.
package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ContextKey is the type of context keys set by this package.
type ContextKey string

const (
	// IdentityContextKey holds the authenticated Identity.
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// Identity is the authenticated caller of a request. It is set once by the
// authentication middleware and passed by value afterwards.
type Identity struct {
	AccountID int64
	Email     string
	Role      domain.Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(IdentityContextKey).(Identity)
	if !ok || id.AccountID == 0 {
		return Identity{}, false
	}
	return id, true
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
