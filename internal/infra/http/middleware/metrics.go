package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	emailsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_dispatched_total",
			Help: "Scheduled emails processed by the dispatcher, by outcome",
		},
		[]string{"status"},
	)

	emailsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emails_generated_total",
			Help: "Follow-up emails drafted by the generation service",
		},
	)

	generationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_errors_total",
			Help: "Failed text-generation calls",
		},
	)

	cardScansProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_scans_processed_total",
			Help: "Business-card scan jobs processed, by outcome",
		},
		[]string{"outcome"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordDispatch(status string) {
	emailsDispatched.WithLabelValues(status).Inc()
}

func RecordGeneration() {
	emailsGenerated.Inc()
}

func RecordGenerationError() {
	generationErrors.Inc()
}

func RecordCardScan(outcome string) {
	cardScansProcessed.WithLabelValues(outcome).Inc()
}
