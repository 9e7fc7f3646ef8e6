package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// productRepository 商品仓储实现
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 名称唯一索引冲突转换为name字段的校验错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		Name:            p.Name,
		Type:            p.Type,
		ProductionPrice: p.ProductionPrice,
		SalePrice:       p.SalePrice,
		MinStock:        p.MinStock,
		CurrentStock:    p.CurrentStock,
	}

	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.NewFieldError(product.FieldName, validation.MsgDuplicateName)
		}
		return translateError(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.notFoundOr(err, id, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// FindByName 根据名称精确查找
func (r *productRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Where("name = ?", strings.TrimSpace(name)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound.WithMessagef("商品%q不存在", name)
		}
		return nil, translateError(err, "查询商品失败")
	}
	return toProductEntity(&model), nil
}

// Search 名称或类型包含term(不区分大小写)
func (r *productRepository) Search(ctx context.Context, term string) ([]*product.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}

	like := "%" + strings.ToLower(term) + "%"
	var models []ProductModel
	err := r.getDB(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(type) LIKE ?", like, like).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, translateError(err, "搜索商品失败")
	}
	return toProductEntities(models), nil
}

// List 查询全部商品
func (r *productRepository) List(ctx context.Context) ([]*product.Product, error) {
	var models []ProductModel
	if err := r.getDB(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateError(err, "查询商品列表失败")
	}
	return toProductEntities(models), nil
}

// LockByID 悲观锁查询商品
// 教学要点:必须在TxManager开启的事务中调用,锁在提交时释放
// SQLite不支持行锁,方言会忽略FOR UPDATE,由单连接保证串行
func (r *productRepository) LockByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.notFoundOr(err, id, "锁定商品失败")
	}
	return toProductEntity(&model), nil
}

// Update 只写入Patch中非nil的列
func (r *productRepository) Update(ctx context.Context, id uint, patch product.Patch) error {
	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		updates["type"] = strings.TrimSpace(*patch.Type)
	}
	if patch.ProductionPrice != nil {
		updates["production_price"] = *patch.ProductionPrice
	}
	if patch.SalePrice != nil {
		updates["sale_price"] = *patch.SalePrice
	}
	if patch.MinStock != nil {
		updates["min_stock"] = *patch.MinStock
	}
	if patch.CurrentStock != nil {
		updates["current_stock"] = *patch.CurrentStock
	}
	if len(updates) == 0 {
		return product.ErrEmptyPatch
	}

	result := r.getDB(ctx).Model(&ProductModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return apperrors.NewFieldError(product.FieldName, validation.MsgDuplicateName)
		}
		return translateError(result.Error, "更新商品失败")
	}
	return r.checkAffected(ctx, result.RowsAffected, id)
}

// AdjustStock 原子调整库存
// 教学要点:
// 1. 单条UPDATE完成读-改-写: current_stock = current_stock + delta
// 2. 不校验下限,销售允许负库存
// 3. 在调用方的事务中执行,失败随事务回滚
func (r *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	result := r.getDB(ctx).Model(&ProductModel{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta))
	if result.Error != nil {
		return translateError(result.Error, "调整库存失败")
	}
	return r.checkAffected(ctx, result.RowsAffected, id)
}

// checkAffected RowsAffected为0时确认行是否存在
// MySQL默认返回"实际变化的行数",值未变时同样为0
func (r *productRepository) checkAffected(ctx context.Context, affected int64, id uint) error {
	if affected > 0 {
		return nil
	}
	var count int64
	if err := r.getDB(ctx).Model(&ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err, "查询商品失败")
	}
	if count == 0 {
		return product.ErrProductNotFound.WithMessagef("商品#%d不存在", id)
	}
	return nil
}

func (r *productRepository) notFoundOr(err error, id uint, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product.ErrProductNotFound.WithMessagef("商品#%d不存在", id)
	}
	return translateError(err, message)
}

func toProductEntities(models []ProductModel) []*product.Product {
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products
}
