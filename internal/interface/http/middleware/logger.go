package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookclub/pkg/logger"
	"github.com/xiebiao/bookclub/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID，上游传入时复用
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 为每个请求生成request_id，把带request_id的logger注入Request Context，
// 后续的zerolog.Ctx(ctx)都会带上这个字段。
// 需放在Tracing之后，才能拿到trace_id。
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		lctx := base.With().Str("request_id", requestID)
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			lctx = lctx.Str("trace_id", traceID).Str("span_id", tracing.ExtractSpanID(c.Request.Context()))
		}
		l := lctx.Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		var e *zerolog.Event
		switch {
		case status >= 500:
			e = l.Error()
		case status >= 400:
			e = l.Warn()
		default:
			e = l.Info()
		}
		if userID := GetUserID(c); userID != 0 {
			e = e.Uint("user_id", userID)
		}
		if len(c.Errors) > 0 {
			e = e.Str("errors", c.Errors.String())
		}
		e.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP请求")

		if latency > slowRequestThreshold {
			l.Warn().Str("path", c.Request.URL.Path).Dur("latency", latency).Msg("慢请求")
		}
	}
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
