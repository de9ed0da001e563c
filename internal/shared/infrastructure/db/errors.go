package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// OpError 把持久层失败包在"当时在做什么"的标签里往上传。
// 原始驱动错误只进 cause 链（溯源用），不参与对外文案——
// 客户端看到什么由接口层的错误处理器决定。
type OpError struct {
	Op  string
	Err error
}

// Wrap 给底层错误打上操作标签；err 为 nil 时返回 nil。
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Operation 返回操作标签（能力接口，供日志/错误处理器提取）。
func (e *OpError) Operation() string {
	if e == nil {
		return ""
	}
	return e.Op
}

// MySQL duplicate entry（唯一键冲突）。
const mysqlErrDupEntry = 1062

// IsDuplicateEntry 判断错误链里是否存在唯一约束冲突。
// 优先看 MySQL 错误码；文本关键字兜底（其他驱动/测试桩）。
func IsDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		return myerr.Number == mysqlErrDupEntry
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate") || strings.Contains(text, "unique")
}

// IsNotFound 判断错误链里是否是"记录不存在"。
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
