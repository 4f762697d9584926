package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cartquote"

// Provider call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Metrics records provider calls and cart outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	cartRequests     *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg yields a no-op recorder.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Shipping provider quote calls by outcome.",
		}, []string{"provider", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_duration_seconds",
			Help:      "Latency of shipping provider quote calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		cartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_requests_total",
			Help:      "Cart quote requests by result kind.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.providerRequests, m.providerDuration, m.cartRequests)
	return m
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(name, outcome string, d time.Duration) {
	if m == nil || m.providerRequests == nil {
		return
	}
	name = normalizeLabel(name)
	m.providerRequests.WithLabelValues(name, outcome).Inc()
	m.providerDuration.WithLabelValues(name).Observe(d.Seconds())
}

// IncCart records the result of one cart request ("ok" or an error kind).
func (m *Metrics) IncCart(result string) {
	if m == nil || m.cartRequests == nil {
		return
	}
	m.cartRequests.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "unknown"
	}
	return v
}
