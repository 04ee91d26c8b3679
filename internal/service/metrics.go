package service

import (
	"errors"

	"github.com/msomdec/family-events/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts mutations and refused actions. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Mutations *prometheus.CounterVec
	Failures  *prometheus.CounterVec
	Logins    *prometheus.CounterVec
}

// NewMetrics registers the counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "festa",
				Name:      "mutations_total",
				Help:      "Successful store mutations by action",
			},
			[]string{"action"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "festa",
				Name:      "failures_total",
				Help:      "Refused or failed actions by action and reason",
			},
			[]string{"action", "reason"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "festa",
				Name:      "logins_total",
				Help:      "Sign-in attempts by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) mutation(action string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(action).Inc()
}

func (m *Metrics) failure(action string, err error) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(action, failureReason(err)).Inc()
}

func (m *Metrics) login(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.Logins.WithLabelValues(result).Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "internal"
	}
}
