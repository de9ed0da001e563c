package logx

import (
	"errors"
	"fmt"
	"testing"
)

type fakeCoded struct {
	cause error
}

func (e *fakeCoded) Error() string {
	return fmt.Sprintf("SYS001: boom: %v", e.cause)
}
func (e *fakeCoded) Unwrap() error            { return e.cause }
func (e *fakeCoded) CodeText() string         { return "SYS001" }
func (e *fakeCoded) Msg() string              { return "boom" }
func (e *fakeCoded) Details() map[string]any  { return map[string]any{"operation": "user_repo.create"} }
func (e *fakeCoded) Field() string            { return "" }

func TestBuildErrorLog_能提取语义与cause链(t *testing.T) {
	cause := errors.New("db down")
	meta := BuildErrorLog(&fakeCoded{cause: cause})

	if meta.Error == "" {
		t.Fatalf("期望 meta.Error 非空")
	}
	if meta.Code != "SYS001" {
		t.Fatalf("期望 meta.Code=SYS001，got=%q", meta.Code)
	}
	if meta.Msg != "boom" {
		t.Fatalf("期望 meta.Msg=boom，got=%q", meta.Msg)
	}
	if meta.Details == nil || meta.Details["operation"] != "user_repo.create" {
		t.Fatalf("期望 meta.Details 包含 operation，got=%v", meta.Details)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
}

func TestBuildErrorLog_nil输入(t *testing.T) {
	meta := BuildErrorLog(nil)
	if meta.Error != "" || meta.Code != "" {
		t.Fatalf("期望 nil 输入产出零值，got=%+v", meta)
	}
}
