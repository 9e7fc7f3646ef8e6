package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/masses/internal/infrastructure/config"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/metrics"
)

// txKey context中保存事务DB的键
type txKey struct{}

// TxManager 事务管理器(工作单元)
// 教学要点:
// 1. 封装GORM的Transaction方法,通过context传递事务DB
// 2. fn内的所有Repository操作都在同一事务中执行,返回error即ROLLBACK
// 3. 遇到序列化失败/死锁/SQLITE_BUSY时整个事务按指数退避重试,次数有上限
// 4. 嵌套调用直接复用外层事务
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := txnRepo.Create(ctx, txn); err != nil {
//	        return err // 自动回滚
//	    }
//	    return productRepo.AdjustStock(ctx, productID, -quantity)
//	})
type TxManager struct {
	db              *gorm.DB
	log             *zap.Logger
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB, cfg config.LedgerConfig, log *zap.Logger) *TxManager {
	return &TxManager{
		db:              db,
		log:             log,
		maxRetries:      cfg.MaxRetries,
		initialInterval: cfg.RetryInitialInterval,
		maxInterval:     cfg.RetryMaxInterval,
	}
}

// Transaction 执行事务
// 并发冲突重试耗尽后返回ErrConcurrencyConflict,其他错误不重试、原样返回
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
		switch {
		case err == nil:
			return nil
		case apperrors.IsConcurrencyConflict(err):
			return err
		case isConflictError(err):
			return apperrors.ErrConcurrencyConflict.WithCause(err)
		default:
			return backoff.Permanent(err)
		}
	}

	notify := func(err error, wait time.Duration) {
		metrics.TxRetriesTotal.Inc()
		m.log.Warn("事务并发冲突,准备重试",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	return backoff.RetryNotify(operation, backoff.WithContext(m.newBackOff(), ctx), notify)
}

func (m *TxManager) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if m.initialInterval > 0 {
		b.InitialInterval = m.initialInterval
	}
	if m.maxInterval > 0 {
		b.MaxInterval = m.maxInterval
	}
	// 次数由WithMaxRetries控制,不按总时长截断
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, m.maxRetries)
}

// getDB 从context提取事务DB,没有事务时使用普通连接
// 单连接的SQLite上,事务内如果绕过这里直接用r.db会永久阻塞
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
