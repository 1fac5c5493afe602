package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory registries.
type Metrics struct {
	// Mutations by entity ("branch", "employee") and operation
	// ("create", "update", "delete").
	Mutations *prometheus.CounterVec

	// Rejections by entity and error code.
	Rejections *prometheus.CounterVec
}

// New creates and registers all directory metrics.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_directory_mutations_total",
			Help: "Successful directory mutations by entity and operation",
		}, []string{"entity", "operation"}),

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_directory_rejections_total",
			Help: "Rejected directory mutations by entity and error code",
		}, []string{"entity", "code"}),
	}
}

// RecordMutation counts a successful mutation.
func (m *Metrics) RecordMutation(entity, operation string) {
	if m != nil {
		m.Mutations.WithLabelValues(entity, operation).Inc()
	}
}

// RecordRejection counts a rejected mutation.
func (m *Metrics) RecordRejection(entity, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(entity, code).Inc()
	}
}
