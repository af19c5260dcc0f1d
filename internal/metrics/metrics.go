// Package metrics provides Prometheus metrics for capability invocations and
// the HTTP transports.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
)

const namespace = "mcp_wordpress"

// Collector holds all Prometheus metrics of the server. It implements
// capability.Observer.
type Collector struct {
	// Invocation metrics
	InvocationsTotal   *prometheus.CounterVec
	InvocationErrors   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec

	// Registry metrics
	Capabilities *prometheus.GaugeVec

	// HTTP transport metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewRegistry returns a registry with the Go runtime and process collectors
// already registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates a collector registered with the default Prometheus registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector with a custom registry. When reg is
// also a Gatherer, Handler serves exactly that registry.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		InvocationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocations_total",
				Help:      "Total number of capability invocations",
			},
			[]string{"kind", "name", "outcome"},
		),
		InvocationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocation_errors_total",
				Help:      "Total number of failed invocations by error kind",
			},
			[]string{"kind", "name", "error_kind"},
		),
		InvocationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "invocation_duration_seconds",
				Help:      "Invocation duration in seconds, including the backend call",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"kind", "name"},
		),
		Capabilities: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "registered_capabilities",
				Help:      "Number of registered capabilities by kind",
			},
			[]string{"kind"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served by the MCP transport",
			},
			[]string{"method", "status"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}
	return c
}

// ObserveInvocation records one completed invocation.
func (c *Collector) ObserveInvocation(kind capability.Kind, name, outcome, errorKind string, duration time.Duration) {
	k := string(kind)
	c.InvocationsTotal.WithLabelValues(k, name, outcome).Inc()
	c.InvocationDuration.WithLabelValues(k, name).Observe(duration.Seconds())
	if errorKind != "" {
		c.InvocationErrors.WithLabelValues(k, name, errorKind).Inc()
	}
}

// RecordRegistry publishes the number of registered capabilities per kind.
func (c *Collector) RecordRegistry(reg *capability.Registry) {
	for _, kind := range capability.Kinds {
		c.Capabilities.WithLabelValues(string(kind)).Set(float64(len(reg.List(kind))))
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Middleware counts HTTP requests by method and status class.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.HTTPRequestsInFlight.Inc()
		defer c.HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		c.HTTPRequestsTotal.WithLabelValues(r.Method, statusClass(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming transports (SSE, streamable HTTP) working through
// the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
