package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RegistrationsTotal  *prometheus.CounterVec
	InvitationsTotal    *prometheus.CounterVec
	NotificationsTotal  prometheus.Counter
	SSEClientsConnected prometheus.Gauge

	AuthFailuresTotal  prometheus.Counter
	AuthSuccessesTotal prometheus.Counter

	ServerStartTime prometheus.Gauge
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myhackx_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "myhackx_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RegistrationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myhackx_registrations_total",
			Help: "Total number of event registrations.",
		}, []string{"kind"}),

		InvitationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myhackx_invitations_total",
			Help: "Total number of invitation transitions.",
		}, []string{"outcome"}),

		NotificationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "myhackx_notifications_total",
			Help: "Total number of notifications created.",
		}),

		SSEClientsConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "myhackx_sse_clients_connected",
			Help: "Number of currently connected notification streams.",
		}),

		AuthFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "myhackx_auth_failures_total",
			Help: "Total number of failed authentication attempts.",
		}),

		AuthSuccessesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "myhackx_auth_successes_total",
			Help: "Total number of successful authentication attempts.",
		}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "myhackx_server_start_time_seconds",
			Help: "Unix timestamp of server start.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RegistrationsTotal,
		m.InvitationsTotal,
		m.NotificationsTotal,
		m.SSEClientsConnected,
		m.AuthFailuresTotal,
		m.AuthSuccessesTotal,
		m.ServerStartTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.ServerStartTime.SetToCurrentTime()
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() drift.HandlerFunc {
	return func(c *drift.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		rec := &statusRecorder{ResponseWriter: c.Response, status: http.StatusOK}
		c.Response = rec

		c.Next()

		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
