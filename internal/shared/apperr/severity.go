package apperr

// Severity 表示错误的严重级别，决定日志级别与是否需要告警。
//
// 约定：
// - low：正常用户错误（校验失败、资源不存在）
// - medium：业务规则拒绝、认证/授权失败
// - high：影响功能的系统问题
// - critical：需要立即介入的系统故障
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)
