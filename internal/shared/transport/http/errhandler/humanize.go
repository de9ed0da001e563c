package errhandler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"

	"github.com/go-playground/validator/v10"
)

// maxFieldSuggestions 是校验错误建议的上限。协议允许到 10 条，
// 但超过 3 条用户基本不读，这里收紧。
const maxFieldSuggestions = 3

// HumanizeFieldError 把 validator 的原始错误翻译成面向用户的文案。
func HumanizeFieldError(fe validator.FieldError) apperr.FieldError {
	field := fieldPath(fe)
	out := apperr.FieldError{
		Field:        field,
		InvalidValue: fe.Value(),
		Constraint:   fe.Tag(),
	}

	switch fe.Tag() {
	case "required":
		out.Message = apperr.RequiredMessage(field)
	case "email":
		out.Message = apperr.MsgEmailInvalid
	case "min":
		if n, err := strconv.Atoi(fe.Param()); err == nil && fe.Kind().String() == "string" {
			out.Message = apperr.MinLengthMessage(field, n)
		} else {
			out.Message = fmt.Sprintf("'%s' must be at least %s", field, fe.Param())
		}
	case "max":
		if n, err := strconv.Atoi(fe.Param()); err == nil && fe.Kind().String() == "string" {
			out.Message = apperr.MaxLengthMessage(field, n)
		} else {
			out.Message = fmt.Sprintf("'%s' cannot exceed %s", field, fe.Param())
		}
	case "oneof":
		choices := strings.Fields(fe.Param())
		out.Message = apperr.InvalidChoiceMessage(field, choices)
		out.AllowedValues = choices
	default:
		out.Message = humanizeRaw(field, fe.Error())
	}
	return out
}

// HumanizeTypeError 把 JSON 反序列化的类型不匹配翻译成字段级错误。
func HumanizeTypeError(typeErr *json.UnmarshalTypeError) apperr.FieldError {
	field := typeErr.Field
	if field == "" {
		field = "root"
	}
	expected := typeErr.Type.String()
	return apperr.FieldError{
		Field:        field,
		Message:      fmt.Sprintf("'%s' must be of type %s", field, friendlyType(expected)),
		Constraint:   "type",
		ExpectedType: expected,
	}
}

// SuggestionsFor 按出错字段挑选可操作建议。去重、封顶，
// 恒附文档指引。
func SuggestionsFor(fieldErrors []apperr.FieldError) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, fe := range fieldErrors {
		name := strings.ToLower(fe.Field)
		switch {
		case strings.Contains(name, "email"):
			add(apperr.SuggestVerifyEmailFormat)
		case strings.Contains(name, "password"):
			add(apperr.SuggestPasswordStrength)
		case strings.Contains(name, "phone"):
			add(apperr.SuggestPhoneFormat)
		}
	}
	add(apperr.SuggestCheckDocs)

	if len(out) > maxFieldSuggestions {
		out = out[:maxFieldSuggestions]
	}
	return out
}

// fieldPath 取字段的点分路径，去掉最外层结构体名并统一小写。
// 例：UserCreate.Profile.Email -> profile.email。
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	path := strings.ToLower(strings.Join(parts, "."))
	if path == "" {
		return "root"
	}
	return path
}

// humanizeRaw 兜底：按原始错误文案里的关键字给个能看的说明。
func humanizeRaw(field, raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "required"):
		return apperr.RequiredMessage(field)
	case strings.Contains(lower, "email"):
		return apperr.MsgEmailInvalid
	case strings.Contains(lower, "min"):
		return fmt.Sprintf("'%s' is below the minimum allowed", field)
	case strings.Contains(lower, "max"):
		return fmt.Sprintf("'%s' exceeds the maximum allowed", field)
	default:
		return fmt.Sprintf("'%s' is invalid", field)
	}
}

func friendlyType(goType string) string {
	switch goType {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "number"
	default:
		return goType
	}
}
