// Package metrics exposes Prometheus counters for roster activity and HTTP
// traffic on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"people-monitor-go/internal/domain/event"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "people_monitor"

type Manager struct {
	namespace string
	registry  *prometheus.Registry

	eventsCreated      prometheus.Counter
	peopleAdded        prometheus.Counter
	peopleRemoved      prometheus.Counter
	responsesSubmitted *prometheus.CounterVec
	importRows         *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.eventsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created, duplicates included",
	})
	m.peopleAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "people_added_total",
		Help:      "Total number of people added to rosters",
	})
	m.peopleRemoved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "people_removed_total",
		Help:      "Total number of people removed from rosters",
	})
	m.responsesSubmitted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "responses_submitted_total",
			Help:      "Total number of safety responses submitted by status",
		},
		[]string{"status"},
	)
	m.importRows = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "import_rows_total",
			Help:      "Rows seen by bulk imports by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and method",
		},
		[]string{"route", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	return m
}

func (m *Manager) EventCreated() {
	m.eventsCreated.Inc()
}

func (m *Manager) PeopleAdded(count int) {
	m.peopleAdded.Add(float64(count))
}

func (m *Manager) PersonRemoved() {
	m.peopleRemoved.Inc()
}

func (m *Manager) ResponseSubmitted(status event.Status) {
	m.responsesSubmitted.WithLabelValues(string(status)).Inc()
}

func (m *Manager) ImportCompleted(source string, accepted, rejected int) {
	m.importRows.WithLabelValues(source, "accepted").Add(float64(accepted))
	m.importRows.WithLabelValues(source, "rejected").Add(float64(rejected))
}

// Middleware records one sample per request labelled with the chi route
// pattern, so ids in the path do not create new series.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		m.httpRequests.WithLabelValues(route, r.Method, code).Inc()
		m.httpRequestDuration.WithLabelValues(route, r.Method, code).Observe(time.Since(start).Seconds())
	})
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
