// Package metrics exposes the Prometheus collectors of lecture-eval.
//
// A Metrics value owns its own registry, so several servers (as in tests)
// never collide on collector registration. Recording methods are safe on a
// nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lecture_eval"

// Metrics holds the service collectors
type Metrics struct {
	registry *prometheus.Registry

	requests             *prometheus.CounterVec
	duration             *prometheus.HistogramVec
	usersRegistered      prometheus.Counter
	lecturersAdded       prometheus.Counter
	evaluationsSubmitted prometheus.Counter
	ratings              prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route template and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route template.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Users successfully registered.",
		}),
		lecturersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lecturers_added_total",
			Help:      "Lecturers added.",
		}),
		evaluationsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_submitted_total",
			Help:      "Evaluations accepted.",
		}),
		ratings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_rating",
			Help:      "Distribution of accepted ratings.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.usersRegistered,
		m.lecturersAdded,
		m.evaluationsSubmitted,
		m.ratings,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// UserRegistered counts a successful registration
func (m *Metrics) UserRegistered() {
	if m == nil {
		return
	}
	m.usersRegistered.Inc()
}

// LecturerAdded counts a new lecturer
func (m *Metrics) LecturerAdded() {
	if m == nil {
		return
	}
	m.lecturersAdded.Inc()
}

// EvaluationSubmitted counts an accepted evaluation and observes its rating
func (m *Metrics) EvaluationSubmitted(rating int) {
	if m == nil {
		return
	}
	m.evaluationsSubmitted.Inc()
	m.ratings.Observe(float64(rating))
}

// Middleware records request counts and latency per mux route template.
// Unmatched requests are recorded under the route "unmatched".
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		route := routeTemplate(r)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(snoop.Code)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(snoop.Duration.Seconds())
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
