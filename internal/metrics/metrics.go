// Package metrics exposes Prometheus collectors for contact submissions,
// backend calls and the content cache.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

// Metrics groups every collector of the service. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	backendRequests    *prometheus.CounterVec
	backendDuration    *prometheus.HistogramVec
	contentCache       *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aved_contact_submissions_total",
			Help: "Contact form submissions by outcome",
		}, []string{"source", "outcome"}),
		submissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aved_contact_submission_duration_seconds",
			Help:    "Time spent forwarding an accepted submission to the backend",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		backendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aved_backend_requests_total",
			Help: "Backend API calls by endpoint and response code",
		}, []string{"endpoint", "code"}),
		backendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aved_backend_request_duration_seconds",
			Help:    "Backend API call latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		contentCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aved_content_cache_total",
			Help: "Static content cache lookups by result",
		}, []string{"result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveSubmission counts a submission attempt. source is "web", "api" or "cli".
func (m *Metrics) ObserveSubmission(source, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(source, outcome).Inc()
}

// ObserveSubmissionDuration records how long the backend call took.
func (m *Metrics) ObserveSubmissionDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.submissionDuration.Observe(d.Seconds())
}

// ObserveBackend records one backend call. code is the envelope response
// code, or "error" for transport failures.
func (m *Metrics) ObserveBackend(endpoint, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(endpoint, code).Inc()
	m.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveCache counts a content cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.contentCache.WithLabelValues(result).Inc()
}
