package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics содержит метрики жизненного цикла визитов и работ
type Metrics struct {
	AppointmentTransitions *prometheus.CounterVec
	WorkItemTransitions    *prometheus.CounterVec
	IgnoredMutations       *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
}

// New регистрирует метрики в переданном registerer.
// nil означает prometheus.DefaultRegisterer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		AppointmentTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_transitions_total",
			Help:      "The total number of applied appointment status transitions",
		}, []string{"status"}),
		WorkItemTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "work_item_transitions_total",
			Help:      "The total number of applied work item status transitions",
		}, []string{"status"}),
		IgnoredMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ignored_mutations_total",
			Help:      "Mutations absorbed because the target id is unknown",
		}, []string{"entity"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}

	reg.MustRegister(
		m.AppointmentTransitions,
		m.WorkItemTransitions,
		m.IgnoredMutations,
		m.RequestDuration,
	)
	return m
}

// Nop возвращает метрики, не привязанные ни к одному registry.
func Nop() *Metrics {
	return New("nop", prometheus.NewRegistry())
}
