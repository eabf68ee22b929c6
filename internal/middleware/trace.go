package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

const (
	// TraceHeader carries the request trace id in both directions
	TraceHeader = "X-Trace-Id"
	// TraceContextKey stores the trace id in the gin context
	TraceContextKey = "traceID"
)

// TraceMiddleware honours an incoming X-Trace-Id or generates one, echoes it
// back and attaches a trace-scoped logger to the request context.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := strings.TrimSpace(c.GetHeader(TraceHeader))
		if traceID == "" || len(traceID) > 128 {
			traceID = strings.ReplaceAll(uuid.New().String(), "-", "")
		}

		c.Set(TraceContextKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Header(TraceHeader, traceID)

		c.Next()
	}
}

// TraceID returns the trace id of the request, or "".
func TraceID(c *gin.Context) string {
	return c.GetString(TraceContextKey)
}
