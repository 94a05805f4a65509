package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	jobSourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_job_source_requests_total",
			Help: "Job source calls by outcome",
		},
		[]string{"source", "outcome"},
	)

	jobSourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_job_source_duration_seconds",
			Help:    "Job source call latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"source"},
	)

	jobsAggregated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobportal_jobs_aggregated",
			Help:    "Unique jobs returned per aggregation",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 25, 30},
		},
	)

	resumesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_resumes_scored_total",
			Help: "Résumés scored",
		},
	)

	resumeScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobportal_resume_ats_score",
			Help:    "Distribution of ATS scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	extractionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_text_extraction_failures_total",
			Help: "Documents whose text could not be extracted",
		},
	)

	translations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_translations_total",
			Help: "Translation requests by outcome",
		},
		[]string{"outcome"},
	)

	applications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_applications_total",
			Help: "Application lifecycle events",
		},
		[]string{"event"},
	)

	rateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"group"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Job source outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeSkipped     = "skipped"
	OutcomeBreakerOpen = "breaker_open"
)

// ObserveJobSource records one adapter call.
func ObserveJobSource(source, outcome string, elapsed time.Duration) {
	jobSourceRequests.WithLabelValues(source, outcome).Inc()
	if outcome != OutcomeSkipped {
		jobSourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	}
}

// ObserveAggregated records how many unique jobs an aggregation returned.
func ObserveAggregated(n int) {
	jobsAggregated.Observe(float64(n))
}

// ObserveResumeScore records a scored résumé.
func ObserveResumeScore(score int) {
	resumesScored.Inc()
	resumeScore.Observe(float64(score))
}

// IncExtractionFailed counts an unreadable document.
func IncExtractionFailed() {
	extractionFailures.Inc()
}

// IncTranslation counts a translation by outcome (translated, skipped, cached, failed).
func IncTranslation(outcome string) {
	translations.WithLabelValues(outcome).Inc()
}

// IncApplication counts an application event (submitted, enqueued, screened, screen_failed).
func IncApplication(event string) {
	applications.WithLabelValues(event).Inc()
}

// IncRateLimited counts a request rejected with 429.
func IncRateLimited(group string) {
	rateLimited.WithLabelValues(group).Inc()
}

// ObserveHTTP records a finished HTTP request.
func ObserveHTTP(method, route, status string, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
