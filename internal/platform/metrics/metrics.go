package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	OnboardingCompleted      prometheus.Counter
	ModulesCompleted         prometheus.Counter
	FieldEdits               prometheus.Counter
	SubscriptionsAccepted    prometheus.Counter
	SubscriptionsRejected    prometheus.Counter
	SubscriptionForwardFails prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		OnboardingCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_onboarding_completed_total",
			Help: "Total number of users that finalized onboarding",
		}),
		ModulesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_modules_completed_total",
			Help: "Total number of module completions recorded",
		}),
		FieldEdits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_foundation_field_edits_total",
			Help: "Total number of persisted foundations field edits",
		}),
		SubscriptionsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_subscriptions_accepted_total",
			Help: "Total number of accepted email subscriptions",
		}),
		SubscriptionsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_subscriptions_rejected_total",
			Help: "Total number of subscriptions rejected by validation",
		}),
		SubscriptionForwardFails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "praxis_subscription_forward_failures_total",
			Help: "Total number of failed forwards to the mailing-list provider",
		}),
	}
}

// IncrementOnboardingCompleted increments the onboarding completion counter.
func (m *Metrics) IncrementOnboardingCompleted() {
	if m != nil {
		m.OnboardingCompleted.Inc()
	}
}

// IncrementModulesCompleted increments the module completion counter.
func (m *Metrics) IncrementModulesCompleted() {
	if m != nil {
		m.ModulesCompleted.Inc()
	}
}

// IncrementFieldEdits increments the persisted field edit counter.
func (m *Metrics) IncrementFieldEdits() {
	if m != nil {
		m.FieldEdits.Inc()
	}
}

// IncrementSubscriptionsAccepted increments the accepted subscription counter.
func (m *Metrics) IncrementSubscriptionsAccepted() {
	if m != nil {
		m.SubscriptionsAccepted.Inc()
	}
}

// IncrementSubscriptionsRejected increments the rejected subscription counter.
func (m *Metrics) IncrementSubscriptionsRejected() {
	if m != nil {
		m.SubscriptionsRejected.Inc()
	}
}

// IncrementSubscriptionForwardFails increments the forward failure counter.
func (m *Metrics) IncrementSubscriptionForwardFails() {
	if m != nil {
		m.SubscriptionForwardFails.Inc()
	}
}
