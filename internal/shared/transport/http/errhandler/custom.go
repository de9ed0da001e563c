package errhandler

import (
	"errors"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
)

// CustomProcessor 处理领域错误（*apperr.Error）。
// 领域错误自带完整语义，这里只补请求级追踪字段。
type CustomProcessor struct{}

func (CustomProcessor) Priority() int { return 0 }

func (CustomProcessor) CanProcess(err error) bool {
	var appErr *apperr.Error
	return errors.As(err, &appErr)
}

func (CustomProcessor) Process(err error, ec *ErrorContext) *Result {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return nil
	}

	enriched := appErr.WithRequest(ec.RequestID, ec.Path, ec.Method, ec.CorrelationID)
	code := enriched.Code()

	return &Result{
		Schema:      enriched.ToSchema(),
		Severity:    severityLevel(code.Severity),
		ShouldAlert: code.RequiresAlert(),
		MetricTags: map[string]string{
			"error_code": code.Code,
			"severity":   string(code.Severity),
		},
	}
}
