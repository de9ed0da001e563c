package apperr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/tracex"
)

// FieldError 是单个字段校验失败的最小描述，由校验方在抛出点填写。
type FieldError struct {
	Field         string
	Message       string
	InvalidValue  any
	Constraint    string
	ExpectedType  string
	AllowedValues []string
}

// Error 是通用领域错误模型（闭集变体通过构造函数产生）：
// - code：对外语义（HTTP 状态/默认文案/严重级别的唯一来源）
// - msg/field/resource/rule/suggestions：抛出点填写的业务上下文
// - requestID/path/method/correlationID：由 dispatcher 在渲染前填充一次
// - cause：原始错误链（仅用于溯源，不参与对外语义）
// - stack：只在系统类（SYS 前缀）错误首次挂 cause 时捕获一次
type Error struct {
	code            ErrorCode
	msg             string
	field           string
	resourceType    string
	resourceID      string
	ruleName        string
	ruleDescription string
	contextData     map[string]any
	details         map[string]any
	suggestions     []string
	fieldErrors     []FieldError

	requestID     string
	path          string
	method        string
	correlationID string

	traceID   string
	timestamp time.Time
	cause     error
	stack     []uintptr
}

func newError(code ErrorCode, msg string) *Error {
	if msg == "" {
		msg = code.Message
	}
	return &Error{
		code:      code,
		msg:       msg,
		traceID:   tracex.NewTraceID(),
		timestamp: time.Now().UTC(),
	}
}

// NewValidation 从单个 field/message 对构造 VAL001。
// field 为空是编程错误，直接 panic（构造期约束，不是可恢复错误）。
func NewValidation(field, message string) *Error {
	if field == "" {
		panic("apperr: validation error requires a field name")
	}
	e := newError(CodeValidationFailed, message)
	e.field = field
	e.fieldErrors = []FieldError{{Field: field, Message: message}}
	return e
}

// NewValidationList 从一批字段错误构造 VAL001（收集器模式的出口）。
// 空列表是编程错误：校验通过就不该构造校验错误。
func NewValidationList(fieldErrors []FieldError) *Error {
	if len(fieldErrors) == 0 {
		panic("apperr: validation error requires at least one field error")
	}
	e := newError(CodeValidationFailed, "Invalid input data provided")
	e.fieldErrors = make([]FieldError, len(fieldErrors))
	copy(e.fieldErrors, fieldErrors)
	return e
}

func NewResourceNotFound(resourceType, resourceID string) *Error {
	if resourceType == "" || resourceID == "" {
		panic("apperr: resource not found error requires resource type and id")
	}
	e := newError(CodeResourceNotFound, fmt.Sprintf("%s not found", resourceType))
	e.resourceType = resourceType
	e.resourceID = resourceID
	e.suggestions = []string{fmt.Sprintf("Verify that the %s ID is correct", strings.ToLower(resourceType))}
	return e
}

func NewDuplicateResource(resourceType, field, value string) *Error {
	if resourceType == "" || field == "" {
		panic("apperr: duplicate resource error requires resource type and field")
	}
	e := newError(CodeDuplicateResource, fmt.Sprintf("A %s with this %s already exists", resourceType, field))
	e.resourceType = resourceType
	e.field = field
	e.contextData = map[string]any{"value": value}
	e.suggestions = []string{
		fmt.Sprintf("Use a different %s", field),
		fmt.Sprintf("Check if the %s already exists", strings.ToLower(resourceType)),
	}
	return e
}

func NewAuthentication(message string) *Error {
	e := newError(CodeInvalidCredentials, message)
	if e.msg == CodeInvalidCredentials.Message {
		e.msg = "Authentication failed"
	}
	e.suggestions = []string{"Check your credentials", "Use 'Forgot Password' if needed"}
	return e
}

func NewAuthorization(message string) *Error {
	e := newError(CodeAccessDenied, message)
	e.suggestions = []string{"Contact administrator for access"}
	return e
}

func NewBusinessRule(ruleName, ruleDescription string, contextData map[string]any) *Error {
	if ruleName == "" {
		panic("apperr: business rule error requires a rule name")
	}
	e := newError(CodeBusinessRuleViolation, "")
	e.ruleName = ruleName
	e.ruleDescription = ruleDescription
	e.contextData = cloneAnyMap(contextData)
	e.suggestions = []string{"Review the business rules for this operation"}
	return e
}

func NewQuotaExceeded(ruleName, ruleDescription string, contextData map[string]any) *Error {
	if ruleName == "" {
		panic("apperr: quota error requires a rule name")
	}
	e := newError(CodeQuotaExceeded, "")
	e.ruleName = ruleName
	e.ruleDescription = ruleDescription
	e.contextData = cloneAnyMap(contextData)
	e.suggestions = []string{"Contact your administrator to increase limits"}
	return e
}

// NewDatabase 把一次持久层失败包装成 SYS001。
// operation 标记当时在做什么（诊断用）；底层驱动的原始文案只进 details，
// 是否出现在响应里由 dispatcher 的 debug 开关决定。
func NewDatabase(operation string, cause error) *Error {
	if operation == "" {
		panic("apperr: database error requires an operation tag")
	}
	e := newError(CodeDatabaseError, "A database error occurred")
	e.details = map[string]any{"operation": operation}
	e.suggestions = []string{"Try again", "Contact support if problem persists"}
	e.cause = cause
	if cause != nil {
		e.details["cause"] = cause.Error()
		e.stack = captureStack(3)
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.code.Code, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.code.Code, e.msg, e.cause)
}

// Unwrap 让 errors.Is / errors.As 可以沿着 cause 链溯源。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 仅按错误码判断"语义是否相同"，忽略上下文与 cause。
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code.Code == t.code.Code
}

func (e *Error) Code() ErrorCode {
	if e == nil {
		return ErrorCode{}
	}
	return e.code
}

func (e *Error) CodeText() string {
	if e == nil {
		return ""
	}
	return e.code.Code
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

func (e *Error) Field() string {
	if e == nil {
		return ""
	}
	return e.field
}

func (e *Error) TraceID() string {
	if e == nil {
		return ""
	}
	return e.traceID
}

// FieldErrors 返回字段错误列表的拷贝（仅 VAL001 非空）。
func (e *Error) FieldErrors() []FieldError {
	if e == nil || len(e.fieldErrors) == 0 {
		return nil
	}
	out := make([]FieldError, len(e.fieldErrors))
	copy(out, e.fieldErrors)
	return out
}

// Details 返回 details 的拷贝，避免外部修改影响错误上下文。
func (e *Error) Details() map[string]any {
	if e == nil {
		return nil
	}
	return cloneAnyMap(e.details)
}

func (e *Error) Suggestions() []string {
	if e == nil || len(e.suggestions) == 0 {
		return nil
	}
	out := make([]string, len(e.suggestions))
	copy(out, e.suggestions)
	return out
}

// Stack 返回"错误最早发生/被转换那一刻"的调用栈（只对系统类错误生效）。
func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	out := make([]uintptr, len(e.stack))
	copy(out, e.stack)
	return out
}

func (e *Error) clone() *Error {
	next := *e
	next.contextData = cloneAnyMap(e.contextData)
	next.details = cloneAnyMap(e.details)
	next.suggestions = append([]string(nil), e.suggestions...)
	next.fieldErrors = append([]FieldError(nil), e.fieldErrors...)
	next.stack = append([]uintptr(nil), e.stack...)
	return &next
}

func (e *Error) WithField(field string) *Error {
	next := e.clone()
	next.field = field
	return next
}

func (e *Error) WithResourceType(resourceType string) *Error {
	next := e.clone()
	next.resourceType = resourceType
	return next
}

func (e *Error) WithDetail(key string, value any) *Error {
	next := e.clone()
	if next.details == nil {
		next.details = make(map[string]any, 1)
	}
	next.details[key] = value
	return next
}

func (e *Error) WithSuggestions(suggestions ...string) *Error {
	next := e.clone()
	next.suggestions = append([]string(nil), suggestions...)
	return next
}

func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	// 只在系统类错误首次挂 cause 时捕获一次栈；下层已有栈则不重复捕获。
	if next.code.IsServerError() && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

// WithRequest 由 dispatcher 在渲染前调用，恰好一次，填充请求侧标识。
// 错误实例不跨请求共享，所以这里不需要同步。
func (e *Error) WithRequest(requestID, path, method, correlationID string) *Error {
	next := e.clone()
	next.requestID = requestID
	next.path = path
	next.method = method
	next.correlationID = correlationID
	return next
}

// ToSchema 渲染成统一响应结构。确定性：同一个实例两次调用产出相同内容。
func (e *Error) ToSchema() *Response {
	resp := &Response{
		Error:         e.code.Code,
		Message:       e.msg,
		StatusCode:    e.code.Status,
		Timestamp:     e.timestamp,
		RequestID:     e.requestID,
		Path:          e.path,
		Method:        e.method,
		Field:         e.field,
		ResourceID:    e.resourceID,
		ResourceType:  e.resourceType,
		Details:       cloneAnyMap(e.details),
		Suggestions:   CapSuggestions(e.suggestions),
		TraceID:       e.traceID,
		CorrelationID: e.correlationID,

		RuleName:        e.ruleName,
		RuleDescription: e.ruleDescription,
		ContextData:     cloneAnyMap(e.contextData),
	}
	if len(e.fieldErrors) != 0 {
		resp.ValidationErrors = make([]ValidationDetail, 0, len(e.fieldErrors))
		for _, fe := range e.fieldErrors {
			resp.ValidationErrors = append(resp.ValidationErrors, ValidationDetail{
				Field:         fe.Field,
				Message:       fe.Message,
				InvalidValue:  fe.InvalidValue,
				Constraint:    fe.Constraint,
				ExpectedType:  fe.ExpectedType,
				AllowedValues: fe.AllowedValues,
			})
		}
	}
	return resp
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
