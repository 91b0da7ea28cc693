package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds.
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDurationHistogram)
}

// HTTPMetrics holds configuration for HTTP metrics collection.
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics creates an HTTP metrics collector for a service.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware returns a Fiber middleware that records request metrics.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Use the matched route pattern rather than the raw path to keep
		// label cardinality bounded.
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		RequestCounter.WithLabelValues(m.ServiceName, c.Method(), path, status).Inc()
		RequestDurationHistogram.WithLabelValues(m.ServiceName, c.Method(), path, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns the Prometheus scrape endpoint as a Fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
