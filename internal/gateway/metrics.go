package gateway

import "github.com/prometheus/client_golang/prometheus"

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

type Metrics struct {
	calls *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pbvsi",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Resource gateway calls by resource, operation and where the result came from.",
		}, []string{"resource", "op", "source"}),
	}
	if reg != nil {
		reg.MustRegister(m.calls)
	}
	return m
}

func (m *Metrics) observe(resource, op string, src Source) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(resource, op, string(src)).Inc()
}

// Calls exposes the counter for tests and dashboards.
func (m *Metrics) Calls() *prometheus.CounterVec { return m.calls }
