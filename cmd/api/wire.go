//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链: Config → DB → Repository → Service/Engine → Handler → Router → Server

package main

import (
	"net/http"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/application/catalog"
	appledger "github.com/xiebiao/masses/internal/application/ledger"
	"github.com/xiebiao/masses/internal/infrastructure/config"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/store"
	"github.com/xiebiao/masses/internal/interface/http/handler"
)

// infrastructureSet 基础设施: 数据库、事务、缓存、事件发布
var infrastructureSet = wire.NewSet(
	provideDB,
	provideTxManager,
	provideValidator,
	provideProductCache,
	provideEventPublisher,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	store.NewProductRepository,
	store.NewClientRepository,
	store.NewTransactionRepository,
	store.NewPaymentRepository,
	store.NewProductionRepository,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	catalog.NewService,
	appledger.NewEngine,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewProductHandler,
	handler.NewClientHandler,
	handler.NewFormHandler,
	handler.NewTransactionHandler,
	handler.NewProductionHandler,
	provideRouter,
	provideServer,
)

// InitializeApp 组装HTTP服务,cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
