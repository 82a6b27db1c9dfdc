package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors the API exposes on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	BillsCreated    prometheus.Counter
	QuotaExhausted  prometheus.Counter
	ReportsExported prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "billease",
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, labelled by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "billease",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BillsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "billease",
			Name:      "bills_created_total",
			Help:      "Bills created successfully.",
		}),
		QuotaExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "billease",
			Name:      "quota_exhausted_total",
			Help:      "Bill creations rejected because the metered quota ran out.",
		}),
		ReportsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "billease",
			Name:      "reports_exported_total",
			Help:      "Sales report workbooks exported.",
		}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.BillsCreated, m.QuotaExhausted, m.ReportsExported)
	return m
}

// Middleware records request counts and latency. Unmatched routes share a
// single label value so 404 noise cannot explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the scrape endpoint for this registry only.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
