package apperr

import "time"

// MaxSuggestions 是响应体 suggestions 的上限（协议约束）。
const MaxSuggestions = 10

// Response 是所有非 2xx 响应的统一 JSON 结构。
// 可选字段序列化时省略；details 只在 debug 模式下允许填充。
type Response struct {
	Error      string    `json:"error"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`

	Path          string         `json:"path,omitempty"`
	Method        string         `json:"method,omitempty"`
	Field         string         `json:"field,omitempty"`
	ResourceID    string         `json:"resource_id,omitempty"`
	ResourceType  string         `json:"resource_type,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	TraceID       string         `json:"trace_id,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`

	// 校验错误扩展：非空时必须至少一条。
	ValidationErrors []ValidationDetail `json:"validation_errors,omitempty"`

	// 业务规则扩展。
	RuleName        string         `json:"rule_name,omitempty"`
	RuleDescription string         `json:"rule_description,omitempty"`
	ContextData     map[string]any `json:"context_data,omitempty"`
}

// ValidationDetail 描述单个字段的校验失败。
type ValidationDetail struct {
	Field         string   `json:"field"`
	Message       string   `json:"message"`
	InvalidValue  any      `json:"invalid_value,omitempty"`
	Constraint    string   `json:"constraint,omitempty"`
	ExpectedType  string   `json:"expected_type,omitempty"`
	AllowedValues []string `json:"allowed_values,omitempty"`
}

// CapSuggestions 把 suggestions 截断到协议上限，输入不足上限时原样返回拷贝。
func CapSuggestions(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	n := len(in)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	out := make([]string, n)
	copy(out, in[:n])
	return out
}
