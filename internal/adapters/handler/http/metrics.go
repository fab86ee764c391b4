package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ballots         *prometheus.CounterVec
	pollChanges     *prometheus.CounterVec
}

// NewMetrics registers the API collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_http_requests_total",
			Help: "number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "election_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ballots: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_ballots_total",
			Help: "ballots recorded, by outcome",
		}, []string{"outcome"}),
		pollChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "election_poll_status_changes_total",
			Help: "poll open/close actions",
		}, []string{"action"}),
	}
}

func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
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
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ballotRecorded(outcome domain.BallotOutcome) {
	if m == nil {
		return
	}
	m.ballots.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) pollStatusChanged(action string) {
	if m == nil {
		return
	}
	m.pollChanges.WithLabelValues(action).Inc()
}
