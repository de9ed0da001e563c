package errhandler

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/apperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/httperr"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func newTestRouter(t *testing.T, debug bool, register func(*gin.Engine)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(debug, logx.NewZapLogger(nil), nil)
	engine.Use(h.Middleware())
	register(engine)
	return engine
}

func doRequest(engine *gin.Engine, method, path string, header map[string]string) (*httptest.ResponseRecorder, apperr.Response) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	engine.ServeHTTP(w, req)

	var body apperr.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandler_领域错误渲染为统一响应体(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.POST("/users", func(c *gin.Context) {
			_ = c.Error(apperr.NewDuplicateResource("User", "email", "john@example.com"))
		})
	})

	w, body := doRequest(engine, nethttp.MethodPost, "/users", nil)

	if w.Code != nethttp.StatusConflict {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusConflict)
	}
	if body.Error != "RES002" {
		t.Fatalf("unexpected error code: got=%s want=RES002", body.Error)
	}
	if body.ResourceType != "User" || body.Field != "email" {
		t.Fatalf("resource context missing: type=%s field=%s", body.ResourceType, body.Field)
	}
	if body.RequestID == "" || body.Path != "/users" || body.Method != nethttp.MethodPost {
		t.Fatalf("request context missing: %+v", body)
	}
	if w.Header().Get("X-Request-ID") != body.RequestID {
		t.Fatalf("X-Request-ID 头和响应体不一致")
	}
}

func TestHandler_优先级_领域错误不落入兜底(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/tasks/:id", func(c *gin.Context) {
			_ = c.Error(apperr.NewResourceNotFound("Task", c.Param("id")))
		})
	})

	w, body := doRequest(engine, nethttp.MethodGet, "/tasks/42", nil)

	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusNotFound)
	}
	if body.Error != "RES001" {
		t.Fatalf("领域错误被错误的 processor 处理: got=%s want=RES001", body.Error)
	}
}

func TestHandler_兜底_未分类错误归一为SYS003(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/boom", func(c *gin.Context) {
			_ = c.Error(errors.New("something exploded"))
		})
	})

	w, body := doRequest(engine, nethttp.MethodGet, "/boom", nil)

	if w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusInternalServerError)
	}
	if body.Error != "SYS003" {
		t.Fatalf("unexpected error code: got=%s want=SYS003", body.Error)
	}
	if body.Message != "An unexpected error occurred" {
		t.Fatalf("兜底响应不能泄漏内部错误文案: got=%q", body.Message)
	}
}

func TestHandler_兜底_panic也走统一响应(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/panic", func(c *gin.Context) {
			panic("unexpected state")
		})
	})

	w, body := doRequest(engine, nethttp.MethodGet, "/panic", nil)

	if w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusInternalServerError)
	}
	if body.Error != "SYS003" {
		t.Fatalf("unexpected error code: got=%s want=SYS003", body.Error)
	}
}

func TestHandler_数据库唯一键冲突归一为RES002(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.POST("/tags", func(c *gin.Context) {
			cause := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'work' for key 'tags.name'"}
			_ = c.Error(db.Wrap("tag.create", cause))
		})
	})

	w, body := doRequest(engine, nethttp.MethodPost, "/tags", nil)

	if w.Code != nethttp.StatusConflict {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusConflict)
	}
	if body.Error != "RES002" {
		t.Fatalf("unexpected error code: got=%s want=RES002", body.Error)
	}
}

func TestHandler_数据库其他错误归一为SYS001_非debug不出details(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/users", func(c *gin.Context) {
			_ = c.Error(db.Wrap("user.list", errors.New("dial tcp: connection refused")))
		})
	})

	w, body := doRequest(engine, nethttp.MethodGet, "/users", nil)

	if w.Code != nethttp.StatusInternalServerError {
		t.Fatalf("unexpected status code: got=%d want=%d", w.Code, nethttp.StatusInternalServerError)
	}
	if body.Error != "SYS001" {
		t.Fatalf("unexpected error code: got=%s want=SYS001", body.Error)
	}
	if body.Details != nil {
		t.Fatalf("非 debug 模式不能返回 details: %+v", body.Details)
	}
}

func TestHandler_debug模式返回details(t *testing.T) {
	engine := newTestRouter(t, true, func(e *gin.Engine) {
		e.GET("/users", func(c *gin.Context) {
			_ = c.Error(db.Wrap("user.list", errors.New("dial tcp: connection refused")))
		})
	})

	_, body := doRequest(engine, nethttp.MethodGet, "/users", nil)

	if body.Details == nil {
		t.Fatalf("debug 模式应返回 details")
	}
	if op, _ := body.Details["operation"].(string); op != "user.list" {
		t.Fatalf("details 缺少 operation: %+v", body.Details)
	}
}

func TestHandler_correlation_id_透传请求头(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/x", func(c *gin.Context) {
			_ = c.Error(apperr.NewAuthorization("Access denied"))
		})
	})

	const cid = "corr-abc-123"
	w, body := doRequest(engine, nethttp.MethodGet, "/x", map[string]string{"X-Correlation-ID": cid})

	if body.CorrelationID != cid {
		t.Fatalf("correlation_id 未透传: got=%s want=%s", body.CorrelationID, cid)
	}
	if w.Header().Get("X-Correlation-ID") != cid {
		t.Fatalf("X-Correlation-ID 响应头未透传")
	}
	if body.RequestID == cid {
		t.Fatalf("request_id 必须每请求新铸，不能复用 correlation_id")
	}
}

func TestHandler_每请求request_id唯一(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/x", func(c *gin.Context) {
			_ = c.Error(apperr.NewAuthentication(""))
		})
	})

	_, first := doRequest(engine, nethttp.MethodGet, "/x", nil)
	_, second := doRequest(engine, nethttp.MethodGet, "/x", nil)

	if first.RequestID == "" || first.RequestID == second.RequestID {
		t.Fatalf("request_id 重复: first=%s second=%s", first.RequestID, second.RequestID)
	}
}

func TestHandler_http状态错误按映射表归一(t *testing.T) {
	cases := []struct {
		status   int
		wantCode string
	}{
		{nethttp.StatusUnauthorized, "AUTH001"},
		{nethttp.StatusForbidden, "AUTH004"},
		{nethttp.StatusNotFound, "RES001"},
		{nethttp.StatusConflict, "RES002"},
		{nethttp.StatusTooManyRequests, "BIZ004"},
		{nethttp.StatusBadGateway, "SYS002"},
		{nethttp.StatusServiceUnavailable, "SYS004"},
		{nethttp.StatusGatewayTimeout, "SYS005"},
		// 映射表没有的状态：code 归 SYS003，但保留真实状态码
		{nethttp.StatusTeapot, "SYS003"},
	}

	for _, tc := range cases {
		engine := newTestRouter(t, false, func(e *gin.Engine) {
			e.GET("/h", func(c *gin.Context) {
				_ = c.Error(httperr.New(tc.status, ""))
			})
		})

		w, body := doRequest(engine, nethttp.MethodGet, "/h", nil)

		if w.Code != tc.status {
			t.Fatalf("status=%d: unexpected response status: got=%d", tc.status, w.Code)
		}
		if body.Error != tc.wantCode {
			t.Fatalf("status=%d: unexpected code: got=%s want=%s", tc.status, body.Error, tc.wantCode)
		}
	}
}

func TestHandler_请求体解析失败归一为VAL001(t *testing.T) {
	newParseRouter := func() *gin.Engine {
		return newTestRouter(t, false, func(e *gin.Engine) {
			e.POST("/items", func(c *gin.Context) {
				var payload struct {
					Title string `json:"title" binding:"required"`
				}
				if err := c.ShouldBindJSON(&payload); err != nil {
					_ = c.Error(err)
					return
				}
				c.JSON(nethttp.StatusOK, payload)
			})
		})
	}

	cases := []struct {
		name string
		body string
	}{
		{"JSON语法错误", "{not json"},
		{"空请求体", ""},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(nethttp.MethodPost, "/items", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		newParseRouter().ServeHTTP(w, req)

		var body apperr.Response
		_ = json.Unmarshal(w.Body.Bytes(), &body)

		if w.Code != nethttp.StatusUnprocessableEntity {
			t.Fatalf("%s: 客户端的坏请求体不能按系统错误处理: got=%d want=%d",
				tc.name, w.Code, nethttp.StatusUnprocessableEntity)
		}
		if body.Error != "VAL001" {
			t.Fatalf("%s: unexpected code: got=%s want=VAL001", tc.name, body.Error)
		}
		if len(body.ValidationErrors) != 1 || body.ValidationErrors[0].Field != "body" {
			t.Fatalf("%s: 缺少 body 字段错误: %+v", tc.name, body.ValidationErrors)
		}
	}
}

func TestValidationProcessor_解析失败按info级别不告警(t *testing.T) {
	var payload struct {
		Title string `json:"title"`
	}
	err := json.Unmarshal([]byte("{not json"), &payload)

	p := ValidationProcessor{}
	if !p.CanProcess(err) {
		t.Fatalf("语法错误应由校验 processor 处理: %T", err)
	}
	res := p.Process(err, testErrorContext())
	if res.Severity != LevelInfo || res.ShouldAlert {
		t.Fatalf("unexpected severity/alert: %s/%v", res.Severity, res.ShouldAlert)
	}
}

func TestHandler_无错误时不干预响应(t *testing.T) {
	engine := newTestRouter(t, false, func(e *gin.Engine) {
		e.GET("/ok", func(c *gin.Context) {
			c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
		})
	})

	w, _ := doRequest(engine, nethttp.MethodGet, "/ok", nil)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("正常响应被错误分发器改写: got=%d", w.Code)
	}
}
