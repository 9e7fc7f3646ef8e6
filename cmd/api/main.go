package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/infrastructure/config"
	"github.com/xiebiao/masses/pkg/logger"
	"github.com/xiebiao/masses/pkg/tracing"
)

// @title        Masses 账本服务 API
// @version      1.0
// @description  商品/客户目录、订单与销售登记、付款与生产记录
// @BasePath     /

// main 主程序入口
// 启动顺序: 配置 → 日志 → 追踪 → 依赖组装(wire) → HTTP服务 → 优雅关闭
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zl, err := logger.New(logger.Config(cfg.Log))
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 3. 链路追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
		})
		if err != nil {
			zl.Warn("初始化链路追踪失败,继续运行", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					zl.Warn("关闭链路追踪失败", zap.Error(err))
				}
			}()
		}
	}

	// 4. 依赖组装
	srv, cleanup, err := InitializeApp(cfg, zl)
	if err != nil {
		zl.Fatal("初始化服务失败", zap.Error(err))
	}
	defer cleanup()

	// 5. 启动HTTP服务
	go func() {
		zl.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.String("database", cfg.Database.Driver),
			zap.Bool("redis", cfg.Redis.Enabled),
			zap.Bool("mq", cfg.MQ.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP服务异常退出", zap.Error(err))
		}
	}()

	// 6. 优雅关闭: 停止接收新请求,等待进行中的请求完成
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务关闭超时", zap.Error(err))
		return
	}
	zl.Info("服务已关闭")
}
