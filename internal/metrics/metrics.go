package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	enquiriesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiries_created_total",
			Help: "Total number of enquiry records created",
		},
		[]string{"type"}, // Enquiry, Product, Accessory
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_notifications_total",
			Help: "Total number of enquiry notification emails dispatched",
		},
		[]string{"status"}, // sent, failed
	)

	productsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "products_created_total",
			Help: "Total number of products created",
		},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)
)

// Middleware records Prometheus metrics for every request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, statusCode).Observe(duration)
	}
}

// RecordEnquiryCreated records a new enquiry record
func RecordEnquiryCreated(enquiryType string) {
	enquiriesCreatedTotal.WithLabelValues(enquiryType).Inc()
}

// RecordNotification records a notification email outcome
func RecordNotification(sent bool) {
	status := "failed"
	if sent {
		status = "sent"
	}
	notificationsTotal.WithLabelValues(status).Inc()
}

// RecordProductCreated records a new product
func RecordProductCreated() {
	productsCreatedTotal.Inc()
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}
