package daemon

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	correlationIDKey    = "correlation_id"
	correlationIDHeader = "X-Correlation-ID"
)

// CorrelationMiddleware tags every HTTP request with a correlation ID,
// reusing the caller's X-Correlation-ID header when present, and logs the
// request once it completes.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(correlationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(correlationIDHeader, correlationID)

		start := time.Now()
		c.Next()

		LogWithCorrelation(c).WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("HTTP request")
	}
}

func GetCorrelationID(c *gin.Context) string {
	if id, exists := c.Get(correlationIDKey); exists {
		if strID, ok := id.(string); ok {
			return strID
		}
	}
	return ""
}

// LogWithCorrelation returns a log entry carrying the request's correlation ID.
func LogWithCorrelation(c *gin.Context) *logrus.Entry {
	return logrus.WithField(correlationIDKey, GetCorrelationID(c))
}
