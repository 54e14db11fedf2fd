package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the moderation counters.
type Metrics struct {
	ReportsSubmitted *prometheus.CounterVec
	ReportsClosed    *prometheus.CounterVec
	SanctionsApplied *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReportsSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_reports_submitted_total",
			Help: "Reports accepted, by target type",
		}, []string{"target_type"}),
		ReportsClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_reports_transitioned_total",
			Help: "Reports moved by moderation actions, by resulting status and action",
		}, []string{"status", "action"}),
		SanctionsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_sanctions_applied_total",
			Help: "User sanctions applied, by kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncReportSubmitted(targetType string) {
	if m == nil {
		return
	}
	m.ReportsSubmitted.WithLabelValues(targetType).Inc()
}

func (m *Metrics) AddReportsTransitioned(status, action string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ReportsClosed.WithLabelValues(status, action).Add(float64(n))
}

func (m *Metrics) IncSanction(kind string) {
	if m == nil {
		return
	}
	m.SanctionsApplied.WithLabelValues(kind).Inc()
}
