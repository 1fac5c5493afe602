package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts event delivery outcomes per topic.
type Metrics struct {
	Published *prometheus.CounterVec
	Failed    *prometheus.CounterVec
	Dropped   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_events_published_total",
			Help: "Domain events successfully written to the message channel.",
		}, []string{"topic"}),
		Failed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_events_failed_total",
			Help: "Domain events that exhausted delivery retries.",
		}, []string{"topic"}),
		Dropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "staffdir_events_dropped_total",
			Help: "Domain events dropped because the publish queue was full.",
		}, []string{"topic"}),
	}
}

func (m *Metrics) RecordPublish(topic string) {
	if m == nil {
		return
	}
	m.Published.WithLabelValues(topic).Inc()
}

func (m *Metrics) RecordFailure(topic string) {
	if m == nil {
		return
	}
	m.Failed.WithLabelValues(topic).Inc()
}

func (m *Metrics) RecordDrop(topic string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(topic).Inc()
}
