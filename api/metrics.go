package api

import (
	"strconv"
	"time"

	"sharebox/models"
	"sharebox/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each instance has
// its own registry. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	storeChanges        prometheus.Counter
	toastsTotal         *prometheus.CounterVec
	eventClients        prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharebox_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sharebox_http_request_duration_seconds",
				Help:    "Histogram of HTTP request durations.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "endpoint", "status"},
		),
		storeChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sharebox_store_changes_total",
			Help: "Number of catalog changes delivered to subscribers.",
		}),
		toastsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharebox_toasts_total",
				Help: "User-facing messages emitted, by severity.",
			},
			[]string{"severity"},
		),
		eventClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sharebox_event_clients",
			Help: "Connected event stream clients.",
		}),
	}
	m.registry.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.storeChanges, m.toastsTotal, m.eventClients)
	return m
}

// WatchCatalog exports the catalog size and like total as gauges read on scrape.
func (m *Metrics) WatchCatalog(catalog *store.Store) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sharebox_products",
			Help: "Products in the catalog.",
		}, func() float64 { return float64(catalog.Stats().TotalProducts) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "sharebox_likes",
			Help: "Likes across all products.",
		}, func() float64 { return float64(catalog.Stats().TotalLikes) }),
	)
}

// Middleware records count and duration of every request by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := classifyStatus(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) recordToast(severity models.Severity) {
	if m == nil {
		return
	}
	m.toastsTotal.WithLabelValues(string(severity)).Inc()
}

func (m *Metrics) recordChange() {
	if m == nil {
		return
	}
	m.storeChanges.Inc()
}

func (m *Metrics) setClients(n int) {
	if m == nil {
		return
	}
	m.eventClients.Set(float64(n))
}

// classifyStatus maps a status code to its class, e.g. 404 to "4xx".
func classifyStatus(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unknown"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
