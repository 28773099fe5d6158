package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts request attempts per host and outcome.
type Metrics struct {
	Attempts *prometheus.CounterVec
}

// NewMetrics creates fetch metrics registered on reg (nil registers nothing).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "culturedeck",
			Subsystem: "fetch",
			Name:      "attempts_total",
			Help:      "HTTP request attempts by host and outcome",
		}, []string{"host", "outcome"}),
	}
}

func (m *Metrics) observe(host string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Attempts.WithLabelValues(host, outcome).Inc()
}
