package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
)

// LoggingConfig holds configuration for the request logging middleware.
type LoggingConfig struct {
	// SkipPaths are route paths that are not logged.  They are still measured.
	SkipPaths []string

	// SlowThreshold is the duration above which a request is logged as slow.
	SlowThreshold time.Duration
}

// DefaultLoggingConfig returns the logging configuration used by the router.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:     []string{"/healthz", "/readyz", "/metrics"},
		SlowThreshold: 3 * time.Second,
	}
}

// HTTPMetrics receives one observation per served request.
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)
	HTTPRequestStarted()
	HTTPRequestFinished()
}

// unmatchedRoute labels requests that matched no route so that arbitrary URLs
// cannot grow the metric label space.
const unmatchedRoute = "unmatched"

// RequestLogging returns middleware that logs every request once it completes
// and records it on metrics.  metrics may be nil.
func RequestLogging(logger logging.Logger, metrics HTTPMetrics, config LoggingConfig) gin.HandlerFunc {
	skipSet := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skipSet[p] = true
	}
	logger = logger.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		if metrics != nil {
			metrics.HTTPRequestStarted()
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		if metrics != nil {
			metrics.HTTPRequestFinished()
			metrics.RecordHTTPRequest(c.Request.Method, route, status, duration)
		}

		if skipSet[route] {
			return
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.String("route", route),
			logging.Int("status", status),
			logging.Duration("duration", duration),
			logging.Int("bytes", c.Writer.Size()),
			logging.String("remote_addr", c.ClientIP()),
		}
		if ua := c.Request.UserAgent(); ua != "" {
			fields = append(fields, logging.String("user_agent", ua))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		l := logger.WithContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			l.Error("HTTP request completed with server error", fields...)
		case status >= http.StatusBadRequest:
			l.Warn("HTTP request completed with client error", fields...)
		case config.SlowThreshold > 0 && duration >= config.SlowThreshold:
			l.Warn("HTTP request completed (slow)", fields...)
		default:
			l.Info("HTTP request completed", fields...)
		}
	}
}

// BodyLimit caps request bodies at limit bytes.  A non-positive limit disables
// the cap.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

//Personal.AI order the ending
