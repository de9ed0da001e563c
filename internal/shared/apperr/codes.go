package apperr

import "net/http"

// ErrorCode 是不可变的错误码值对象：稳定 code + HTTP 状态 + 默认文案 + 严重级别。
//
// 约束：
// - code 全局唯一，按类别前缀划分（AUTH/VAL/RES/BIZ/SYS）
// - 每个 code 只对应一个 HTTP 状态和一个严重级别
// - 表在进程启动时固定，之后只读，任意并发读取安全
type ErrorCode struct {
	Code     string
	Status   int
	Message  string
	Severity Severity
}

var (
	// Authentication & Authorization
	CodeInvalidCredentials = ErrorCode{"AUTH001", http.StatusUnauthorized, "Invalid credentials", SeverityMedium}
	CodeUserNotFound       = ErrorCode{"AUTH002", http.StatusNotFound, "User not found", SeverityLow}
	CodeSessionExpired     = ErrorCode{"AUTH003", http.StatusForbidden, "Session expired", SeverityMedium}
	CodeAccessDenied       = ErrorCode{"AUTH004", http.StatusForbidden, "Access denied", SeverityMedium}

	// Validation
	CodeValidationFailed = ErrorCode{"VAL001", http.StatusUnprocessableEntity, "Validation error", SeverityLow}

	// Resources
	CodeResourceNotFound  = ErrorCode{"RES001", http.StatusNotFound, "Resource not found", SeverityLow}
	CodeDuplicateResource = ErrorCode{"RES002", http.StatusConflict, "Resource already exists", SeverityLow}

	// Business rules
	CodeBusinessRuleViolation = ErrorCode{"BIZ001", http.StatusUnprocessableEntity, "Operation violates business rules", SeverityMedium}
	CodeQuotaExceeded         = ErrorCode{"BIZ004", http.StatusTooManyRequests, "You have exceeded your usage quota", SeverityMedium}

	// System
	CodeDatabaseError        = ErrorCode{"SYS001", http.StatusInternalServerError, "Database error", SeverityCritical}
	CodeExternalServiceError = ErrorCode{"SYS002", http.StatusBadGateway, "External service error", SeverityHigh}
	CodeInternalError        = ErrorCode{"SYS003", http.StatusInternalServerError, "Internal error", SeverityCritical}
	CodeServiceUnavailable   = ErrorCode{"SYS004", http.StatusServiceUnavailable, "Service unavailable", SeverityHigh}
	CodeTimeout              = ErrorCode{"SYS005", http.StatusGatewayTimeout, "Request timed out", SeverityHigh}
)

func (c ErrorCode) IsClientError() bool {
	return c.Status >= 400 && c.Status < 500
}

func (c ErrorCode) IsServerError() bool {
	return c.Status >= 500 && c.Status < 600
}

// RequiresAlert 返回该错误码是否默认需要触发告警。
func (c ErrorCode) RequiresAlert() bool {
	return c.Severity == SeverityHigh || c.Severity == SeverityCritical
}

// AllCodes 返回完整错误码表（只读视图，供一致性校验使用）。
func AllCodes() []ErrorCode {
	return []ErrorCode{
		CodeInvalidCredentials,
		CodeUserNotFound,
		CodeSessionExpired,
		CodeAccessDenied,
		CodeValidationFailed,
		CodeResourceNotFound,
		CodeDuplicateResource,
		CodeBusinessRuleViolation,
		CodeQuotaExceeded,
		CodeDatabaseError,
		CodeExternalServiceError,
		CodeInternalError,
		CodeServiceUnavailable,
		CodeTimeout,
	}
}
