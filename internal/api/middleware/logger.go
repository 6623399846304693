package middleware

import (
	"time"

	"solar-thermal-sizing/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// Logger tags every request with an id (taken from X-Request-ID or generated)
// and logs method, path, status and latency through zap.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		log := logger.L().With(
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		)
		if len(c.Errors) > 0 {
			log.Warnw("request failed", "errors", c.Errors.String())
			return
		}
		if status >= 500 {
			log.Errorw("request")
			return
		}
		log.Infow("request")
	}
}

// RequestID returns the id assigned by Logger, or "" outside of it.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
