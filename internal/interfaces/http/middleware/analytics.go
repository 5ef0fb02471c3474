package middleware

import (
	"strconv"
	"time"

	"autoserve.backend/internal/domain/entities"
	"autoserve.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "autoserve_http_requests_total",
		Help: "Completed HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "autoserve_http_request_duration_seconds",
		Help:    "HTTP request latency by endpoint",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// bodyCounter wraps the response writer to count bytes written
type bodyCounter struct {
	gin.ResponseWriter
	size int64
}

func (w *bodyCounter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *bodyCounter) WriteString(s string) (int, error) {
	n, err := w.ResponseWriter.WriteString(s)
	w.size += int64(n)
	return n, err
}

// AnalyticsMiddleware measures every request, admitted or denied, and
// records it after the response is written. Recording is best-effort;
// the response the client sees is already final by then.
func AnalyticsMiddleware(analytics *usecases.AnalyticsUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		requestSize := c.Request.ContentLength
		if requestSize < 0 {
			requestSize = 0
		}
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		referer := c.Request.Referer()

		writer := &bodyCounter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		endpoint := usecases.ResolveEndpoint(path)

		identity := ""
		if principal, ok := GetPrincipal(c); ok {
			identity = principal.Name()
		}

		errorMessage := ""
		if len(c.Errors) > 0 {
			errorMessage = c.Errors.Last().Error()
		}

		analytics.Record(c.Request.Context(), &entities.RequestLog{
			KeyIdentity:    identity,
			Endpoint:       endpoint,
			Method:         method,
			Path:           path,
			StatusCode:     status,
			ResponseTimeMs: elapsed.Milliseconds(),
			RequestSize:    requestSize,
			ResponseSize:   writer.size,
			IPAddress:      ip,
			UserAgent:      userAgent,
			Referer:        referer,
			ErrorMessage:   errorMessage,
			CreatedAt:      time.Now(),
		})

		httpRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}
