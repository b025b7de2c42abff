package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ForumEntities is the row count per entity (users, categories, questions, answers),
	// refreshed by the stats job.
	ForumEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "forum_entities",
			Help: "Number of stored forum entities by type",
		},
		[]string{"entity"},
	)

	// AuthEvents counts register, login and token checks by outcome.
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_auth_events_total",
			Help: "Total number of authentication events by event and outcome",
		},
		[]string{"event", "outcome"},
	)
)

// Auth event names and outcomes used as label values.
const (
	EventRegister = "register"
	EventLogin    = "login"
	EventVerify   = "verify"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ForumEntities, AuthEvents)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/questions/123 -> /api/questions/{id}.
func NormalizePath(path string) string {
	// Run twice: adjacent numeric segments share a slash, so one pass skips every other one.
	path = numericPathSegment.ReplaceAllString(path, "/{id}$1")
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuthEvent increments the auth events counter.
func RecordAuthEvent(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}

// SetEntityCounts publishes the latest row counts.
func SetEntityCounts(counts map[string]int) {
	for entity, n := range counts {
		ForumEntities.WithLabelValues(entity).Set(float64(n))
	}
}
