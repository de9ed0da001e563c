package errhandler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"

	"github.com/go-playground/validator/v10"
)

// ValidationProcessor 处理请求体校验失败：
// validator 的字段校验错误、JSON 反序列化的类型/语法错误、空请求体
// 都归一成 VAL001。校验失败是正常业务流，级别恒为 info，不告警。
type ValidationProcessor struct{}

func (ValidationProcessor) Priority() int { return 1 }

func (ValidationProcessor) CanProcess(err error) bool {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	// 空请求体/截断的请求体从 decoder 出来就是裸 EOF
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (ValidationProcessor) Process(err error, ec *ErrorContext) *Result {
	var fieldErrors []apperr.FieldError

	var vErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &vErrs):
		fieldErrors = make([]apperr.FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			fieldErrors = append(fieldErrors, HumanizeFieldError(fe))
		}
	case errors.As(err, &typeErr):
		fieldErrors = []apperr.FieldError{HumanizeTypeError(typeErr)}
	case errors.As(err, &syntaxErr):
		fieldErrors = []apperr.FieldError{{
			Field:      "body",
			Message:    "Request body must be valid JSON",
			Constraint: "json",
		}}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		fieldErrors = []apperr.FieldError{{
			Field:      "body",
			Message:    "Request body is required",
			Constraint: "required",
		}}
	default:
		return nil
	}

	appErr := apperr.NewValidationList(fieldErrors).
		WithSuggestions(SuggestionsFor(fieldErrors)...).
		WithRequest(ec.RequestID, ec.Path, ec.Method, ec.CorrelationID)

	return &Result{
		Schema:      appErr.ToSchema(),
		Severity:    LevelInfo,
		ShouldAlert: false,
		MetricTags: map[string]string{
			"error_code": appErr.Code().Code,
			"severity":   string(appErr.Code().Severity),
		},
	}
}
