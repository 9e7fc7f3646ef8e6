// Package ledger 交易与库存账本引擎
//
// 教学要点:
// 1. 引擎是唯一跨表写入的组件,每个操作都是一个工作单元(TxManager)
// 2. 库存变化使用单条UPDATE原子完成,不做"先读后写"
// 3. 事务提交之后才做副作用: 失效缓存、发布事件、记录指标
package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/store"
	"github.com/xiebiao/masses/pkg/metrics"
	"github.com/xiebiao/masses/pkg/tracing"
)

const tracerName = "github.com/xiebiao/masses/internal/application/ledger"

// Engine 账本引擎
type Engine struct {
	transactions ledger.TransactionRepository
	payments     ledger.PaymentRepository
	productions  ledger.ProductionRepository
	products     product.Repository
	clients      client.Repository
	txManager    *store.TxManager
	cache        product.Cache // 可为nil
	events       ledger.EventPublisher
	logger       *zap.Logger
}

// NewEngine 创建账本引擎
func NewEngine(
	transactions ledger.TransactionRepository,
	payments ledger.PaymentRepository,
	productions ledger.ProductionRepository,
	products product.Repository,
	clients client.Repository,
	txManager *store.TxManager,
	cache product.Cache,
	events ledger.EventPublisher,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		transactions: transactions,
		payments:     payments,
		productions:  productions,
		products:     products,
		clients:      clients,
		txManager:    txManager,
		cache:        cache,
		events:       events,
		logger:       logger,
	}
}

// startOperation 开启Span并返回结束函数,结束时记录耗时指标与错误
//
//	ctx, end := e.startOperation(ctx, "register_payment")
//	defer func() { end(err) }()
func (e *Engine) startOperation(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "ledger."+operation,
		trace.WithAttributes(attrs...),
	)
	return ctx, func(err error) {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveOperation(operation, start, err)
	}
}

func (e *Engine) invalidateProducts(ctx context.Context, ids []uint) {
	if e.cache == nil || len(ids) == 0 {
		return
	}
	if err := e.cache.Delete(ctx, ids...); err != nil {
		e.logger.Warn("删除商品缓存失败", zap.Uints("product_ids", ids), zap.Error(err))
	}
}

// txDate 未指定日期时取当天
func txDate(date *time.Time) time.Time {
	if date == nil {
		return ledger.DateOf(time.Time{})
	}
	return ledger.DateOf(*date)
}
