package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CallTokenExchange = "token_exchange"
	CallSheetRead     = "sheet_read"
	CallSheetAppend   = "sheet_append"
	CallNotification  = "notification"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventform",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventform",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventform",
			Name:      "upstream_calls_total",
			Help:      "Outbound calls to Google, the event catalog and the messaging provider.",
		},
		[]string{"call", "outcome"},
	)
)

// ObserveCall records the outcome of one outbound call.
func ObserveCall(call string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	upstreamCalls.WithLabelValues(call, outcome).Inc()
}

// UpstreamCalls exposes the counter for tests.
func UpstreamCalls(call, outcome string) prometheus.Counter {
	return upstreamCalls.WithLabelValues(call, outcome)
}

// Metrics is an HTTP middleware that records request count and duration.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
