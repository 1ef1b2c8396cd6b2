package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

const namespace = "rendezvous"

// Assignment outcomes recorded by the reservation workflow.
const (
	OutcomeAssigned       = "assigned"
	OutcomeManual         = "manual"
	OutcomeNoAvailability = "no_availability"
	OutcomeConflict       = "conflict"
)

type Metrics interface {
	ObserveAssignment(ctx context.Context, outcome string)
	ObserveConflictRetry()
	ObserveAvailability(available bool)
	ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

type metricsImpl struct {
	registry        *prometheus.Registry
	assignments     *prometheus.CounterVec
	conflictRetries prometheus.Counter
	availability    *prometheus.CounterVec
	requests        *prometheus.HistogramVec
}

// New builds an isolated registry, so tests can construct as many as they like.
func New() Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &metricsImpl{
		registry: reg,
		assignments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Reservation placements by outcome.",
		}, []string{"outcome"}),
		conflictRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignment_conflict_retries_total",
			Help:      "Placements retried after losing a seating race at commit.",
		}),
		availability: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Coarse availability checks by answer.",
		}, []string{"available"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),
	}
}

func exemplar(ctx context.Context) prometheus.Labels {
	if span := trace.SpanContextFromContext(ctx); span.IsSampled() {
		return prometheus.Labels{"traceID": span.TraceID().String()}
	}

	return nil
}

func (m *metricsImpl) ObserveAssignment(ctx context.Context, outcome string) {
	counter := m.assignments.WithLabelValues(outcome)

	if labels := exemplar(ctx); labels != nil {
		if adder, ok := counter.(prometheus.ExemplarAdder); ok {
			adder.AddWithExemplar(1, labels)

			return
		}
	}

	counter.Inc()
}

func (m *metricsImpl) ObserveConflictRetry() {
	m.conflictRetries.Inc()
}

func (m *metricsImpl) ObserveAvailability(available bool) {
	m.availability.WithLabelValues(strconv.FormatBool(available)).Inc()
}

func (m *metricsImpl) ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	observer := m.requests.WithLabelValues(method, route, strconv.Itoa(status))

	if labels := exemplar(ctx); labels != nil {
		if eo, ok := observer.(prometheus.ExemplarObserver); ok {
			eo.ObserveWithExemplar(elapsed.Seconds(), labels)

			return
		}
	}

	observer.Observe(elapsed.Seconds())
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
