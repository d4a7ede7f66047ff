// Package metrics owns the Prometheus collectors of the service.
//
// A nil *Registry is valid and records nothing, so components can be built
// without metrics in tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Token verification results.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultExpired = "expired"
	ResultMissing = "missing"
)

// Audit phases.
const (
	PhaseEnter = "enter"
	PhaseExit  = "exit"
)

// Registry holds the service collectors on a dedicated prometheus.Registry.
type Registry struct {
	registry           *prometheus.Registry
	tokenVerifications *prometheus.CounterVec
	auditEvents        *prometheus.CounterVec
	authAttempts       *prometheus.CounterVec
}

// New creates a Registry with all service collectors plus the Go runtime
// and process collectors registered.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		tokenVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_token_verifications_total",
			Help: "Total number of bearer token verifications by result",
		}, []string{"result"}),
		auditEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_access_audit_events_total",
			Help: "Total number of access audit records by action and phase",
		}, []string{"action", "phase"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_auth_attempts_total",
			Help: "Total number of authentication operations by outcome",
		}, []string{"operation", "result"}),
	}

	r.registry.MustRegister(
		r.tokenVerifications,
		r.auditEvents,
		r.authAttempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// TokenVerification counts one verification outcome.
func (r *Registry) TokenVerification(result string) {
	if r == nil {
		return
	}
	r.tokenVerifications.WithLabelValues(result).Inc()
}

// AuditEvent counts one audit record.
func (r *Registry) AuditEvent(action, phase string) {
	if r == nil {
		return
	}
	r.auditEvents.WithLabelValues(action, phase).Inc()
}

// AuthAttempt counts one signup, signin or password change outcome.
func (r *Registry) AuthAttempt(operation, result string) {
	if r == nil {
		return
	}
	r.authAttempts.WithLabelValues(operation, result).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}
