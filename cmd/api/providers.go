package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	"github.com/xiebiao/masses/internal/infrastructure/config"
	"github.com/xiebiao/masses/internal/infrastructure/messaging"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/store"
	"github.com/xiebiao/masses/internal/interface/http/handler"
	"github.com/xiebiao/masses/internal/interface/http/router"
	"github.com/xiebiao/masses/pkg/circuitbreaker"
	"github.com/xiebiao/masses/pkg/mq"
)

// Custom Providers
// 构造函数的参数需要从Config中提取,或者需要返回cleanup时,在这里包一层

// provideDB 建立数据库连接,cleanup关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := store.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideTxManager(db *gorm.DB, cfg *config.Config, log *zap.Logger) *store.TxManager {
	return store.NewTxManager(db, cfg.Ledger, log)
}

func provideValidator(db *gorm.DB) *validation.Validator {
	return validation.NewValidator(store.NewNameLookup(db))
}

// provideProductCache Redis商品缓存
// 未启用或连接失败时返回nil,服务降级为直接读库
func provideProductCache(cfg *config.Config, log *zap.Logger) (product.Cache, func()) {
	if !cfg.Redis.Enabled {
		return nil, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout+time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("Redis不可用,商品缓存已禁用", zap.Error(err))
		return nil, func() {}
	}
	return redis.NewProductCache(client, cfg.Redis.ProductTTL), func() { _ = client.Close() }
}

// provideEventPublisher 账本事件发布
// 未启用MQ时使用NopPublisher;启用时发布经过熔断器,broker故障不影响账本操作
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (ledger.EventPublisher, func()) {
	if !cfg.MQ.Enabled {
		return messaging.NewNopPublisher(log), func() {}
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		log.Warn("RabbitMQ不可用,账本事件只记录日志", zap.Error(err))
		return messaging.NewNopPublisher(log), func() {}
	}

	breaker := circuitbreaker.NewCircuitBreaker("ledger-events", circuitbreaker.DefaultConfig())
	return messaging.NewEventPublisher(publisher, breaker, log), func() { _ = publisher.Close() }
}

// provideRouter 组装路由
func provideRouter(
	cfg *config.Config,
	log *zap.Logger,
	productHandler *handler.ProductHandler,
	clientHandler *handler.ClientHandler,
	formHandler *handler.FormHandler,
	transactionHandler *handler.TransactionHandler,
	productionHandler *handler.ProductionHandler,
) *gin.Engine {
	gin.SetMode(ginMode(cfg.Server.Mode))
	return router.New(router.Handlers{
		Product:     productHandler,
		Client:      clientHandler,
		Form:        formHandler,
		Transaction: transactionHandler,
		Production:  productionHandler,
	}, log)
}

func provideServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
