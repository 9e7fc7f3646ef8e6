package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/pkg/tracing"
)

const (
	// RequestIDKey gin.Context中保存请求ID的键
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	slowRequest     = 3 * time.Second
)

// Logger 请求日志中间件
//
// 教学要点：
// 1. 每个请求一个唯一ID,优先沿用上游传入的X-Request-ID
// 2. 结构化字段: 方法、路径、状态码、耗时、客户端IP、trace_id
// 3. handler通过c.Error挂载的错误在这里统一记录,5xx用Error级别
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("请求失败", fields...)
		case latency > slowRequest:
			log.Warn("慢请求", fields...)
		default:
			log.Info("请求完成", fields...)
		}
	}
}

// GetRequestID 从Context获取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
