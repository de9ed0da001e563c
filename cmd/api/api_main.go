package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/config"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/infrastructure/db"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/logs"
	transporthttp "github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http"
	"github.com/SahiraTejada/task-layer-arquitecture/internal/shared/transport/http/errhandler"
	taskdomain "github.com/SahiraTejada/task-layer-arquitecture/internal/task/domain"
	taskifc "github.com/SahiraTejada/task-layer-arquitecture/internal/task/interfaces"
	userdomain "github.com/SahiraTejada/task-layer-arquitecture/internal/user/domain"
	userifc "github.com/SahiraTejada/task-layer-arquitecture/internal/user/interfaces"
	"github.com/SahiraTejada/task-layer-arquitecture/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.Load("")
	if err := logs.Init("api", config.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", config.Conf))

	if !config.Conf.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := db.Open(config.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&userdomain.User{},
		&taskdomain.Task{},
		&taskdomain.Tag{},
	); err != nil {
		logs.Fatal("auto migrate failed", zap.Error(err))
	}

	logger := logx.NewZapLogger(logs.Logger())

	// 错误分发中间件必须最先注册，才能兜住后续所有 handler 的错误和 panic
	engine := gin.New()
	dispatcher := errhandler.NewHandler(
		config.Conf.App.Debug,
		logger,
		errhandler.NewLogAlerter(logger),
	)
	engine.Use(dispatcher.Middleware())

	host := config.Conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, config.Conf.HTTPServer.Port)
	server := transporthttp.NewHttpServer(addr, engine, logger, config.Conf.App.EnableCORS)

	api := server.Group().Group("/api/v1")
	userifc.New(gormDB).Register(api)
	taskifc.New(gormDB).Register(api)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("http server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- fmt.Errorf("http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("shutdown failed", zap.Error(err))
	}
}
