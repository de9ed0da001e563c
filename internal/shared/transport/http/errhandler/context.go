package errhandler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorContext 是错误发生时的请求快照。构造后只读，
// 各 processor 只能读取，不得回写。
type ErrorContext struct {
	RequestID     string
	CorrelationID string
	Path          string
	Method        string
	Timestamp     time.Time
	ClientIP      string
	UserAgent     string
	QueryParams   map[string]string
}

// FromRequest 从当前请求采集上下文快照。query 参数多值只保留第一个。
func FromRequest(c *gin.Context, requestID, correlationID string) *ErrorContext {
	ec := &ErrorContext{
		RequestID:     requestID,
		CorrelationID: correlationID,
		Path:          c.Request.URL.Path,
		Method:        c.Request.Method,
		Timestamp:     time.Now().UTC(),
		ClientIP:      c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	}
	query := c.Request.URL.Query()
	if len(query) != 0 {
		ec.QueryParams = make(map[string]string, len(query))
		for k, vs := range query {
			if len(vs) != 0 {
				ec.QueryParams[k] = vs[0]
			}
		}
	}
	return ec
}
