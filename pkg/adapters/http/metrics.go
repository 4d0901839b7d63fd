package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the adapter's Prometheus collectors.
type Metrics struct {
	Validations *prometheus.CounterVec
	Generations *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors. Registration is
// idempotent so tests can build multiple handlers in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toolwright",
			Name:      "validations_total",
			Help:      "Tool validations served, by outcome.",
		}, []string{"outcome"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toolwright",
			Name:      "generations_total",
			Help:      "Tool generations served, by outcome.",
		}, []string{"outcome"}),
	}
	m.Validations = registerOrExisting(m.Validations)
	m.Generations = registerOrExisting(m.Generations)
	return m
}

func registerOrExisting(c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c
}
