package errhandler

import (
	"errors"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/tracex"

	"github.com/go-sql-driver/mysql"
)

// DatabaseProcessor 处理漏到分发层的持久层错误。
// 唯一键冲突对外归一为 RES002（客户端可修复），其余一律 SYS001。
// 对内两种分支都按 ERROR 记录并告警：能漏到这里说明服务层查重被绕过了。
type DatabaseProcessor struct{}

func (DatabaseProcessor) Priority() int { return 3 }

func (DatabaseProcessor) CanProcess(err error) bool {
	var opErr *db.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr)
}

func (DatabaseProcessor) Process(err error, ec *ErrorContext) *Result {
	if db.IsDuplicateEntry(err) {
		code := apperr.CodeDuplicateResource
		resp := &apperr.Response{
			Error:         code.Code,
			Message:       code.Message,
			StatusCode:    code.Status,
			Timestamp:     ec.Timestamp,
			RequestID:     ec.RequestID,
			Path:          ec.Path,
			Method:        ec.Method,
			Suggestions:   []string{"Use a different value for the unique field"},
			TraceID:       tracex.NewTraceID(),
			CorrelationID: ec.CorrelationID,
		}
		return &Result{
			Schema:      resp,
			Severity:    LevelError,
			ShouldAlert: true,
			MetricTags: map[string]string{
				"error_code": code.Code,
				"db_error":   "duplicate_entry",
			},
		}
	}

	op := "query"
	var opErr *db.OpError
	if errors.As(err, &opErr) {
		op = opErr.Operation()
	}

	appErr := apperr.NewDatabase(op, err).
		WithRequest(ec.RequestID, ec.Path, ec.Method, ec.CorrelationID)

	return &Result{
		Schema:      appErr.ToSchema(),
		Severity:    LevelError,
		ShouldAlert: true,
		MetricTags: map[string]string{
			"error_code":   appErr.Code().Code,
			"db_operation": op,
		},
	}
}
