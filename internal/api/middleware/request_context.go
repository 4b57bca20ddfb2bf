package middleware

import (
	"time"

	"bank-core/internal/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestContextKey = "request_context"

// RequestContext holds request-scoped metadata, created fresh for each
// HTTP request — a request ID to correlate the request's log lines, and
// a logger that injects it automatically. Published events do not carry
// the request ID.
type RequestContext struct {
	RequestID string
	ClientIP  string
	StartTime time.Time
	Logger    RequestLogger
}

// RequestLogger wraps the package-level logger, injecting request_id
// and client_ip into every field map it forwards.
type RequestLogger struct {
	requestID string
	clientIP  string
}

func (rl RequestLogger) withContext(fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["request_id"] = rl.requestID
	fields["client_ip"] = rl.clientIP
	return fields
}

func (rl RequestLogger) Info(message string, fields map[string]interface{}) {
	logging.Info(message, rl.withContext(fields))
}

func (rl RequestLogger) Warn(message string, fields map[string]interface{}) {
	logging.Warn(message, rl.withContext(fields))
}

func (rl RequestLogger) Error(message string, err error, fields map[string]interface{}) {
	logging.Error(message, err, rl.withContext(fields))
}

func newRequestContext(c *gin.Context) *RequestContext {
	requestID := uuid.New().String()
	return &RequestContext{
		RequestID: requestID,
		ClientIP:  c.ClientIP(),
		StartTime: time.Now(),
		Logger: RequestLogger{
			requestID: requestID,
			clientIP:  c.ClientIP(),
		},
	}
}

// Duration returns how long this request has been processing.
func (rc *RequestContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}

// RequestContextMiddleware creates a RequestContext for each request,
// makes it available via GetRequestContext, and logs request start/end.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqCtx := newRequestContext(c)
		c.Set(requestContextKey, reqCtx)

		reqCtx.Logger.Info("request started", map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})

		c.Next()

		reqCtx.Logger.Info("request completed", map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": reqCtx.Duration().Milliseconds(),
		})
	}
}

// GetRequestContext retrieves the request context from the Gin context.
func GetRequestContext(c *gin.Context) (*RequestContext, bool) {
	v, exists := c.Get(requestContextKey)
	if !exists {
		return nil, false
	}
	rc, ok := v.(*RequestContext)
	return rc, ok
}
