package middleware

import (
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog 统一写访问日志。日志级别按响应状态码分档（<400 INFO，4xx WARN，5xx ERROR）。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		logx.ReportAccess(c.Request.Context(), log, action, c.Writer.Status(),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("body_size", c.Writer.Size()),
		)
	}
}
