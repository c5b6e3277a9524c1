package metrics

import (
	"net/http"
	"strconv"
	"time"

	"fixmycondo/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeStorageRace = "storage_race"
)

// Metrics holds the Prometheus collectors of the service. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter       *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	ComplaintTransitions *prometheus.CounterVec
	SLABreaches          *prometheus.CounterVec
	BookingRequests      *prometheus.CounterVec
}

func New(cfg *config.Config) *Metrics {
	namespace := cfg.Metrics.Namespace
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: registry,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ComplaintTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "complaint",
				Name:      "transitions_total",
				Help:      "Complaint status transitions applied",
			},
			[]string{"from", "to"},
		),
		SLABreaches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "complaint",
				Name:      "sla_breaches_total",
				Help:      "Complaints escalated after missing their SLA deadline",
			},
			[]string{"priority"},
		),
		BookingRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "booking",
				Name:      "requests_total",
				Help:      "Facility booking requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
