package errhandler

import (
	"context"

	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"

	"go.uber.org/zap"
)

// Alerter 把需要人工介入的错误推给告警通道。
// 实现必须非阻塞：告警失败不能影响响应返回。
type Alerter interface {
	Alert(ctx context.Context, r *Result)
}

// LogAlerter 把告警降级成一条高优日志。接入真实告警通道
// （邮件、IM webhook）之前的占位实现。
type LogAlerter struct {
	log logx.Logger
}

func NewLogAlerter(log logx.Logger) *LogAlerter {
	return &LogAlerter{log: log}
}

func (a *LogAlerter) Alert(ctx context.Context, r *Result) {
	if a == nil || a.log == nil || r == nil || r.Schema == nil {
		return
	}
	a.log.WithContext(ctx).Error("alert",
		zap.String("log_type", "alert"),
		zap.String("error_code", r.Schema.Error),
		zap.Int("status", r.Schema.StatusCode),
		zap.String("severity", string(r.Severity)),
		zap.String("path", r.Schema.Path),
		zap.Any("metric_tags", r.MetricTags),
	)
}
