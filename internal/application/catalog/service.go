// Package catalog 商品与客户目录用例
//
// 教学要点:
// 1. 写操作先走校验层(名称唯一、数值非负),结果以字段错误一次性返回
// 2. 修改采用"读-合并-写": 事务内锁定行,只写入Patch中出现的列
// 3. 商品读取走缓存,事务提交后失效缓存
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/store"
)

// Service 目录服务
type Service struct {
	products  product.Repository
	clients   client.Repository
	validator *validation.Validator
	txManager *store.TxManager
	cache     product.Cache // 可为nil(未启用Redis)
	logger    *zap.Logger
}

// NewService 创建目录服务
func NewService(
	products product.Repository,
	clients client.Repository,
	validator *validation.Validator,
	txManager *store.TxManager,
	cache product.Cache,
	logger *zap.Logger,
) *Service {
	return &Service{
		products:  products,
		clients:   clients,
		validator: validator,
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// invalidate 提交后删除商品缓存,失败只记录日志(TTL兜底)
func (s *Service) invalidate(ctx context.Context, ids ...uint) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.logger.Warn("删除商品缓存失败", zap.Uints("product_ids", ids), zap.Error(err))
	}
}
