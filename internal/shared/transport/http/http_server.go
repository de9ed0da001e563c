package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/httperr"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/middleware"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
}

// NewHttpServer 组装 HTTP 服务：engine 为 nil 时新建裸 engine。
// 错误分发中间件由调用方在拿到 engine 后注册，保证它先于业务路由生效。
func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger, enableCORS bool) *Server {
	if engine == nil {
		engine = gin.New()
	}
	if enableCORS {
		engine.Use(middleware.Cors())
	}
	engine.Use(middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})

	// 未匹配的路由/方法交给错误分发链渲染统一响应体。
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		_ = c.Error(httperr.New(nethttp.StatusNotFound, "route not found"))
	})
	engine.NoMethod(func(c *gin.Context) {
		_ = c.Error(httperr.New(nethttp.StatusMethodNotAllowed, "method not allowed"))
	})

	return &Server{
		engine: engine,
		group:  engine.Group(""),
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start 启动 HTTP 服务（阻塞）。关闭时会返回 http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}
