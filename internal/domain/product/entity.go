package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 字段名(与表单/API的字段一一对应，用于字段级错误映射)
const (
	FieldName            = "name"
	FieldType            = "type"
	FieldProductionPrice = "production_price"
	FieldSalePrice       = "sale_price"
	FieldMinStock        = "min_stock"
	FieldCurrentStock    = "current_stock"
)

// Product 商品实体(聚合根)
// 设计说明:
// 1. 名称全局唯一(数据库唯一索引是最终保证)
// 2. 金额使用decimal,避免浮点误差
// 3. CurrentStock允许为负数(销售不做下限校验)
type Product struct {
	ID              uint
	Name            string
	Type            string          // 类型/分类标签
	ProductionPrice decimal.Decimal // 生产成本
	SalePrice       decimal.Decimal // 售价
	MinStock        int             // 最低库存阈值
	CurrentStock    int             // 当前库存
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProduct 创建新商品(工厂方法)
func NewProduct(name, pType string, productionPrice, salePrice decimal.Decimal, minStock, currentStock int) *Product {
	now := time.Now()
	return &Product{
		Name:            strings.TrimSpace(name),
		Type:            strings.TrimSpace(pType),
		ProductionPrice: productionPrice,
		SalePrice:       salePrice,
		MinStock:        minStock,
		CurrentStock:    currentStock,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsBelowMinimum 当前库存是否低于最低库存
func (p *Product) IsBelowMinimum() bool {
	return p.CurrentStock < p.MinStock
}

// Patch 商品部分更新
// nil表示"保持原值",只有非nil字段会被写入
type Patch struct {
	Name            *string
	Type            *string
	ProductionPrice *decimal.Decimal
	SalePrice       *decimal.Decimal
	MinStock        *int
	CurrentStock    *int
}

// IsEmpty 是否没有任何字段需要更新
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.ProductionPrice == nil &&
		p.SalePrice == nil && p.MinStock == nil && p.CurrentStock == nil
}

// Apply 将Patch合并到实体上(读-合并-写中的"合并")
func (p *Product) Apply(patch Patch) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		p.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.ProductionPrice != nil {
		p.ProductionPrice = *patch.ProductionPrice
	}
	if patch.SalePrice != nil {
		p.SalePrice = *patch.SalePrice
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.CurrentStock != nil {
		p.CurrentStock = *patch.CurrentStock
	}
	p.UpdatedAt = time.Now()
}
