package errhandler

import (
	"context"
	"fmt"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/tracex"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
	headerTraceID       = "X-Trace-ID"
)

// Handler 是错误分发器：注册为最外层中间件，拦截 handler 链里
// 挂到 gin.Context 上的错误和 panic，选一个 processor 归一化后
// 渲染统一响应体。
type Handler struct {
	debug      bool
	log        logx.Logger
	alerter    Alerter
	processors []Processor
}

// NewHandler 组装默认处理链。extra 里的 processor 参与同一套
// 优先级排序，可以插在默认链的任意位置。
func NewHandler(debug bool, log logx.Logger, alerter Alerter, extra ...Processor) *Handler {
	ps := []Processor{
		CustomProcessor{},
		ValidationProcessor{},
		HTTPProcessor{},
		DatabaseProcessor{},
		FallbackProcessor{},
	}
	ps = append(ps, extra...)
	return &Handler{
		debug:      debug,
		log:        log,
		alerter:    alerter,
		processors: orderProcessors(ps),
	}
}

// Middleware 返回 gin 中间件。每个请求铸一个新 request_id；
// correlation_id 优先取请求头，没有则补发。
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		correlationID := c.GetHeader(headerCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		ctx := tracex.WithRequestID(c.Request.Context(), requestID)
		ctx = tracex.WithCorrelationID(ctx, correlationID)
		c.Request = c.Request.WithContext(ctx)

		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				if h.log != nil {
					h.log.WithContext(ctx).Error("panic recovered",
						zap.Any("panic", rec),
						zap.Stack("stack"),
					)
				}
				h.dispatch(c, err, requestID, correlationID)
			}
		}()

		c.Next()

		if len(c.Errors) != 0 {
			h.dispatch(c, c.Errors.Last().Err, requestID, correlationID)
		}
	}
}

// dispatch 选第一个能处理的 processor，日志、告警、渲染。
// 链尾 FallbackProcessor 保证必有命中。
func (h *Handler) dispatch(c *gin.Context, err error, requestID, correlationID string) {
	ec := FromRequest(c, requestID, correlationID)

	var result *Result
	for _, p := range h.processors {
		if !p.CanProcess(err) {
			continue
		}
		if result = p.Process(err, ec); result != nil {
			break
		}
	}
	if result == nil || result.Schema == nil {
		result = FallbackProcessor{}.Process(err, ec)
	}

	ctx := c.Request.Context()
	if result.Schema.TraceID != "" {
		ctx = tracex.WithTraceID(ctx, result.Schema.TraceID)
	}

	h.report(ctx, err, result)
	if result.ShouldAlert && h.alerter != nil {
		h.alerter.Alert(ctx, result)
	}
	h.render(c, result.Schema)
}

// report 按级别落日志。error 及以上带完整 cause 链和发生处栈。
func (h *Handler) report(ctx context.Context, err error, result *Result) {
	if h.log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("error_code", result.Schema.Error),
		zap.Int("status", result.Schema.StatusCode),
		zap.String("severity", string(result.Severity)),
		zap.Any("metric_tags", result.MetricTags),
	}
	action := result.Schema.Method + " " + result.Schema.Path
	switch result.Severity {
	case LevelInfo:
		h.log.WithContext(ctx).Info("request failed", fields...)
	case LevelWarning:
		h.log.WithContext(ctx).Warn("request failed", fields...)
	default:
		logx.ReportSysError(ctx, h.log, action, err, fields...)
	}
}

// render 写统一响应。非 debug 模式剥掉 details，内部细节不出网。
func (h *Handler) render(c *gin.Context, schema *apperr.Response) {
	if c.Writer.Written() {
		return
	}
	if !h.debug {
		schema.Details = nil
	}

	c.Header(headerRequestID, schema.RequestID)
	c.Header(headerCorrelationID, schema.CorrelationID)
	if schema.TraceID != "" {
		c.Header(headerTraceID, schema.TraceID)
	}
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")

	c.JSON(schema.StatusCode, schema)
}
