package aggregate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/llehouerou/culturedeck/internal/source"
)

// Metrics surfaces per-source failure counts that the result set alone hides.
type Metrics struct {
	SourceFailures *prometheus.CounterVec
	SearchDuration prometheus.Histogram
}

// NewMetrics creates aggregator metrics registered on reg (nil registers nothing).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "culturedeck",
			Subsystem: "aggregate",
			Name:      "source_failures_total",
			Help:      "Source searches that failed and were isolated",
		}, []string{"source"}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "culturedeck",
			Subsystem: "aggregate",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a full aggregated search",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}),
	}
}

func (m *Metrics) observeFailure(src source.Provenance) {
	if m == nil {
		return
	}
	m.SourceFailures.WithLabelValues(string(src)).Inc()
}

func (m *Metrics) observeSearch(d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(d.Seconds())
}
