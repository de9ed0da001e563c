package errhandler

import (
	"errors"
	"net/http"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/httperr"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/tracex"
)

// httpStatusCodes 把 web 层状态码映射到错误码表。
// 表里没有的状态统一按 SYS003 归类，但保留真实状态码返回。
var httpStatusCodes = map[int]apperr.ErrorCode{
	http.StatusUnauthorized:        apperr.CodeInvalidCredentials,
	http.StatusForbidden:           apperr.CodeAccessDenied,
	http.StatusNotFound:            apperr.CodeResourceNotFound,
	http.StatusConflict:            apperr.CodeDuplicateResource,
	http.StatusTooManyRequests:     apperr.CodeQuotaExceeded,
	http.StatusInternalServerError: apperr.CodeInternalError,
	http.StatusBadGateway:          apperr.CodeExternalServiceError,
	http.StatusServiceUnavailable:  apperr.CodeServiceUnavailable,
	http.StatusGatewayTimeout:      apperr.CodeTimeout,
}

// HTTPProcessor 处理 web 框架层的状态错误（404 路由、405 方法等）。
type HTTPProcessor struct{}

func (HTTPProcessor) Priority() int { return 2 }

func (HTTPProcessor) CanProcess(err error) bool {
	var httpErr *httperr.Error
	return errors.As(err, &httpErr)
}

func (HTTPProcessor) Process(err error, ec *ErrorContext) *Result {
	var httpErr *httperr.Error
	if !errors.As(err, &httpErr) {
		return nil
	}

	code, ok := httpStatusCodes[httpErr.Status]
	if !ok {
		code = apperr.CodeInternalError
	}
	msg := httpErr.Detail
	if msg == "" {
		msg = code.Message
	}

	resp := &apperr.Response{
		Error:         code.Code,
		Message:       msg,
		StatusCode:    httpErr.Status, // 未映射的状态也按真实状态返回
		Timestamp:     ec.Timestamp,
		RequestID:     ec.RequestID,
		Path:          ec.Path,
		Method:        ec.Method,
		TraceID:       tracex.NewTraceID(),
		CorrelationID: ec.CorrelationID,
	}

	severity := LevelWarning
	if httpErr.Status >= 500 {
		severity = LevelError
	}

	return &Result{
		Schema:      resp,
		Severity:    severity,
		ShouldAlert: httpErr.Status >= 500,
		MetricTags: map[string]string{
			"error_code":  code.Code,
			"http_status": http.StatusText(httpErr.Status),
		},
	}
}
