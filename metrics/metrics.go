package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	LookupRequests     *prometheus.CounterVec
	CreditsDebited     prometheus.Counter
	AuditWriteFailures prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		LookupRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_lookup_requests_total",
			Help: "Total number of gated lookup requests by outcome status",
		}, []string{"status"}),
		CreditsDebited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gateway_credits_debited_total",
			Help: "Total number of credits debited for lookup attempts",
		}),
		AuditWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gateway_audit_write_failures_total",
			Help: "Total number of audit log writes that failed",
		}),
	}
}

func (m *Metrics) ObserveOutcome(status string) {
	m.LookupRequests.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementDebits() {
	m.CreditsDebited.Inc()
}

func (m *Metrics) IncrementAuditFailures() {
	m.AuditWriteFailures.Inc()
}
