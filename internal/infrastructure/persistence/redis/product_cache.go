package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/masses/internal/domain/product"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/metrics"
)

const (
	productKeyPrefix = "masses:product:"
	cacheName        = "product"
)

// ProductCache 商品读缓存(Cache-Aside)
// 设计说明：
// 1. 读: 先查缓存,未命中再查库并回填
// 2. 写: 事务提交后删除缓存,下次读取时重建
// 3. 库存变化频繁,TTL兜底防止删除失败导致的长期脏读
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache 创建商品缓存,ttl<=0时使用5分钟
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{client: client, ttl: ttl}
}

var _ product.Cache = (*ProductCache)(nil)

// cachedProduct 缓存中的序列化格式,金额以字符串保存避免精度丢失
type cachedProduct struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	ProductionPrice decimal.Decimal `json:"production_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	MinStock        int             `json:"min_stock"`
	CurrentStock    int             `json:"current_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func productKey(id uint) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

// Get 未命中返回(nil, nil)
func (c *ProductCache) Get(ctx context.Context, id uint) (*product.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "error").Inc()
		return nil, apperrors.ErrRedisError.WithCause(err)
	}

	var cp cachedProduct
	if err := json.Unmarshal(data, &cp); err != nil {
		// 格式不兼容的旧数据按未命中处理
		metrics.CacheRequestsTotal.WithLabelValues(cacheName, "miss").Inc()
		_ = c.client.Del(ctx, productKey(id)).Err()
		return nil, nil
	}

	metrics.CacheRequestsTotal.WithLabelValues(cacheName, "hit").Inc()
	return &product.Product{
		ID:              cp.ID,
		Name:            cp.Name,
		Type:            cp.Type,
		ProductionPrice: cp.ProductionPrice,
		SalePrice:       cp.SalePrice,
		MinStock:        cp.MinStock,
		CurrentStock:    cp.CurrentStock,
		CreatedAt:       cp.CreatedAt,
		UpdatedAt:       cp.UpdatedAt,
	}, nil
}

// Set 写入缓存
func (c *ProductCache) Set(ctx context.Context, p *product.Product) error {
	data, err := json.Marshal(cachedProduct{
		ID:              p.ID,
		Name:            p.Name,
		Type:            p.Type,
		ProductionPrice: p.ProductionPrice,
		SalePrice:       p.SalePrice,
		MinStock:        p.MinStock,
		CurrentStock:    p.CurrentStock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "商品缓存序列化失败")
	}

	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// Delete 批量删除
func (c *ProductCache) Delete(ctx context.Context, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}
