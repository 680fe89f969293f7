package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys shared with the middleware package
const (
	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// healthPath is probed by orchestrators every few seconds; logging it would
// drown the real traffic.
const healthPath = "/health"

// GinMiddleware logs one line per request and stores a request-scoped logger
// in the gin context for handlers to pick up via GetGinLogger.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		reqLogger := logger.With(
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		reqLogger = WithTraceContext(c.Request.Context(), reqLogger)
		c.Set(loggerKey, reqLogger)

		c.Next()

		if path == healthPath {
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}

// Recovery converts handler panics into logged 500 responses
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger, or a nop logger when the
// request middleware did not run
func GetGinLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get(loggerKey); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
