package errhandler

import (
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/tracex"
)

// FallbackProcessor 是链尾兜底：任何错误都能处理，保证没有错误
// 能绕过统一响应体。走到这里说明出现了没有归类的错误，按最高级别上报。
type FallbackProcessor struct{}

func (FallbackProcessor) Priority() int { return 999 }

func (FallbackProcessor) CanProcess(error) bool { return true }

func (FallbackProcessor) Process(err error, ec *ErrorContext) *Result {
	code := apperr.CodeInternalError
	resp := &apperr.Response{
		Error:         code.Code,
		Message:       "An unexpected error occurred",
		StatusCode:    code.Status,
		Timestamp:     ec.Timestamp,
		RequestID:     ec.RequestID,
		Path:          ec.Path,
		Method:        ec.Method,
		Suggestions:   []string{apperr.SuggestTryAgain, apperr.SuggestContactSupport},
		TraceID:       tracex.NewTraceID(),
		CorrelationID: ec.CorrelationID,
	}

	tags := map[string]string{"error_code": code.Code}
	if err != nil {
		tags["error_type"] = "unclassified"
	}

	return &Result{
		Schema:      resp,
		Severity:    LevelCritical,
		ShouldAlert: true,
		MetricTags:  tags,
	}
}
