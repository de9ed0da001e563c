package httperr

import "fmt"

// Error 表示 web 层的通用 HTTP 状态错误（路由不存在、方法不允许等）。
// 业务错误不走这里——业务侧抛 apperr 的领域错误。
type Error struct {
	Status int
	Detail string
}

func New(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Detail == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Detail)
}
