package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// AddProductCommand 新增商品参数
type AddProductCommand struct {
	Name            string
	Type            string
	ProductionPrice decimal.Decimal
	SalePrice       decimal.Decimal
	MinStock        int
	CurrentStock    int
}

// AddProduct 新增商品
// 名称预检查之外,数据库唯一索引冲突同样转换为name字段错误(并发新增同名商品)
func (s *Service) AddProduct(ctx context.Context, cmd AddProductCommand) (*product.Product, error) {
	fields := apperrors.FieldErrors{}

	msg, err := s.validator.ValidateName(ctx, validation.TableProducts, cmd.Name, 0, true)
	if err != nil {
		return nil, err
	}
	fields.Set(product.FieldName, msg)
	checkRequired(fields, product.FieldType, &cmd.Type)
	checkMoney(fields, product.FieldProductionPrice, &cmd.ProductionPrice)
	checkMoney(fields, product.FieldSalePrice, &cmd.SalePrice)
	checkNonNegativeInt(fields, product.FieldMinStock, &cmd.MinStock)
	checkNonNegativeInt(fields, product.FieldCurrentStock, &cmd.CurrentStock)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	p := product.NewProduct(cmd.Name, cmd.Type, cmd.ProductionPrice, cmd.SalePrice, cmd.MinStock, cmd.CurrentStock)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("商品已创建", zap.Uint("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// UpdateProduct 部分更新商品
// 教学要点:
// 1. 事务内 SELECT ... FOR UPDATE 锁定商品行,与销售扣减库存串行化
// 2. 名称校验排除自身ID(改成自己原来的名字不算重复)
// 3. 只写入Patch中非nil的列,未提交的字段保持数据库中的当前值
func (s *Service) UpdateProduct(ctx context.Context, id uint, patch product.Patch) (*product.Product, error) {
	if patch.IsEmpty() {
		return nil, product.ErrEmptyPatch
	}

	var updated *product.Product
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		current, err := s.products.LockByID(txCtx, id)
		if err != nil {
			return err
		}

		fields := apperrors.FieldErrors{}
		if patch.Name != nil {
			msg, err := s.validator.ValidateName(txCtx, validation.TableProducts, *patch.Name, id, true)
			if err != nil {
				return err
			}
			fields.Set(product.FieldName, msg)
		}
		checkRequired(fields, product.FieldType, patch.Type)
		checkMoney(fields, product.FieldProductionPrice, patch.ProductionPrice)
		checkMoney(fields, product.FieldSalePrice, patch.SalePrice)
		checkNonNegativeInt(fields, product.FieldMinStock, patch.MinStock)
		checkNonNegativeInt(fields, product.FieldCurrentStock, patch.CurrentStock)
		if err := fields.Err(); err != nil {
			return err
		}

		if err := s.products.Update(txCtx, id, patch); err != nil {
			return err
		}

		current.Apply(patch)
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("商品已更新", zap.Uint("product_id", id))
	return updated, nil
}

// GetProduct 按ID查询商品(优先读缓存)
func (s *Service) GetProduct(ctx context.Context, id uint) (*product.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("读取商品缓存失败", zap.Uint("product_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			s.logger.Warn("写入商品缓存失败", zap.Uint("product_id", id), zap.Error(err))
		}
	}
	return p, nil
}

// FindProductByName 按名称精确查找
func (s *Service) FindProductByName(ctx context.Context, name string) (*product.Product, error) {
	return s.products.FindByName(ctx, name)
}

// SearchProducts 名称或类型包含term的商品,term为空返回全部
func (s *Service) SearchProducts(ctx context.Context, term string) ([]*product.Product, error) {
	return s.products.Search(ctx, term)
}

// ListProducts 全部商品
func (s *Service) ListProducts(ctx context.Context) ([]*product.Product, error) {
	return s.products.List(ctx)
}

func checkRequired(fields apperrors.FieldErrors, field string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		fields.Set(field, validation.MsgRequired)
	}
}

func checkMoney(fields apperrors.FieldErrors, field string, v *decimal.Decimal) {
	if v == nil {
		return
	}
	if msg := validation.CheckMoney(*v); msg != "" {
		fields.Set(field, msg)
	}
}

func checkNonNegativeInt(fields apperrors.FieldErrors, field string, v *int) {
	if v != nil && *v < 0 {
		fields.Set(field, validation.MsgNegative)
	}
}
