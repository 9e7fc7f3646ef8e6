package product

import (
	"context"
)

// Repository 商品仓储接口(依赖倒置原则)
// 所有方法都会从context中获取事务DB,因此可以参与TxManager开启的事务
type Repository interface {
	// Create 创建商品,名称重复时返回name字段的校验错误
	Create(ctx context.Context, product *Product) error

	// FindByID 根据ID查找商品
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindByName 根据名称精确查找
	FindByName(ctx context.Context, name string) (*Product, error)

	// Search 按名称或类型模糊查询,term为空时返回全部
	Search(ctx context.Context, term string) ([]*Product, error)

	// List 查询全部商品
	List(ctx context.Context) ([]*Product, error)

	// LockByID 悲观锁查询(SELECT ... FOR UPDATE),必须在事务中调用
	LockByID(ctx context.Context, id uint) (*Product, error)

	// Update 只写入Patch中非nil的列
	Update(ctx context.Context, id uint, patch Patch) error

	// AdjustStock 原子调整库存: current_stock = current_stock + delta
	// 不做下限校验,库存允许为负
	AdjustStock(ctx context.Context, id uint, delta int) error
}

// Cache 商品读缓存
// Get未命中时返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*Product, error)
	Set(ctx context.Context, product *Product) error
	Delete(ctx context.Context, ids ...uint) error
}
