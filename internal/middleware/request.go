package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/juju/loggo/v2"
	"time"
)

var logger = loggo.GetLogger("catalogue.http")

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// RequestID keeps the caller's X-Request-ID or assigns a new one, and echoes
// it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request once it has been served.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		format := "[%s] %s %s -> %d (%s)"
		args := []interface{}{c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, status, time.Since(start)}
		switch {
		case status >= 500:
			logger.Errorf(format, args...)
		case status >= 400:
			logger.Warningf(format, args...)
		default:
			logger.Infof(format, args...)
		}
	}
}
