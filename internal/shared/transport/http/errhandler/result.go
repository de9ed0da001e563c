package errhandler

import "github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"

// Level 是错误处理结果的日志级别。
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// Result 是 processor 处理一个错误后的产物：
// 待渲染的响应体 + 日志级别 + 是否触发告警 + 指标标签。
type Result struct {
	Schema      *apperr.Response
	Severity    Level
	ShouldAlert bool
	MetricTags  map[string]string
}

// severityLevel 把领域严重级别映射到日志级别。
func severityLevel(s apperr.Severity) Level {
	switch s {
	case apperr.SeverityLow:
		return LevelInfo
	case apperr.SeverityMedium:
		return LevelWarning
	case apperr.SeverityHigh:
		return LevelError
	case apperr.SeverityCritical:
		return LevelCritical
	default:
		return LevelError
	}
}
