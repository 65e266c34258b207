package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/five82/blogfront/internal/i18n"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	localeKey       = "locale"
)

// requestLogger tags the request with an id and logs it once it completes. The
// request's context carries a logger with the id so handlers log with it too.
func requestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		log := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= 500 {
			event = log.Error()
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("body_size", c.Writer.Size()).
			Msg("request")
	}
}

// localeSelector picks the response language from Accept-Language, falling back
// to the configured locale when the header is absent.
func localeSelector(fallback i18n.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := fallback
		if header := c.GetHeader("Accept-Language"); header != "" {
			locale = i18n.Parse(header)
		}
		c.Set(localeKey, locale)
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

func localeOf(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(localeKey); ok {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.Fallback()
}

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	active   prometheus.Gauge
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	factory := promauto.With(reg)
	return &httpMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogfront_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blogfront_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		active: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blogfront_http_active_requests",
				Help: "Number of HTTP requests in flight",
			},
		),
	}
}

// middleware records request metrics under the route template so post ids do
// not become labels.
func (m *httpMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		m.active.Inc()
		defer m.active.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
