package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/product"
)

// 时间格式: 日期字段只到天,审计时间到秒
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// ProductRequest 新增商品请求(JSON)
// 金额同时接受数字和字符串("12.50"),decimal负责解析
type ProductRequest struct {
	Name            string          `json:"name" example:"Pão de mel"`
	Type            string          `json:"type" example:"doce"`
	ProductionPrice decimal.Decimal `json:"production_price" swaggertype:"string" example:"2.50"`
	SalePrice       decimal.Decimal `json:"sale_price" swaggertype:"string" example:"5.00"`
	MinStock        int             `json:"min_stock" example:"10"`
	CurrentStock    int             `json:"current_stock" example:"40"`
}

// ProductPatchRequest 部分更新商品,未出现的字段保持原值
type ProductPatchRequest struct {
	Name            *string          `json:"name,omitempty"`
	Type            *string          `json:"type,omitempty"`
	ProductionPrice *decimal.Decimal `json:"production_price,omitempty" swaggertype:"string"`
	SalePrice       *decimal.Decimal `json:"sale_price,omitempty" swaggertype:"string"`
	MinStock        *int             `json:"min_stock,omitempty"`
	CurrentStock    *int             `json:"current_stock,omitempty"`
}

// ToPatch 转换为领域层Patch
func (r ProductPatchRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:            r.Name,
		Type:            r.Type,
		ProductionPrice: r.ProductionPrice,
		SalePrice:       r.SalePrice,
		MinStock:        r.MinStock,
		CurrentStock:    r.CurrentStock,
	}
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID              uint   `json:"id" example:"1"`
	Name            string `json:"name" example:"Pão de mel"`
	Type            string `json:"type" example:"doce"`
	ProductionPrice string `json:"production_price" example:"2.50"`
	SalePrice       string `json:"sale_price" example:"5.00"`
	MinStock        int    `json:"min_stock" example:"10"`
	CurrentStock    int    `json:"current_stock" example:"40"`
	BelowMinimum    bool   `json:"below_minimum" example:"false"`
	CreatedAt       string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt       string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ToProductResponse 领域实体 → HTTP响应
func ToProductResponse(p *product.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Type:            p.Type,
		ProductionPrice: p.ProductionPrice.StringFixed(2),
		SalePrice:       p.SalePrice.StringFixed(2),
		MinStock:        p.MinStock,
		CurrentStock:    p.CurrentStock,
		BelowMinimum:    p.IsBelowMinimum(),
		CreatedAt:       p.CreatedAt.Format(DateTimeLayout),
		UpdatedAt:       p.UpdatedAt.Format(DateTimeLayout),
	}
}

func ToProductList(products []*product.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ClientRequest 新增客户请求
type ClientRequest struct {
	Name    string `json:"name" example:"Maria"`
	Contact string `json:"contact" example:"+55 11 99999-0000"`
}

// ClientPatchRequest 部分更新客户
type ClientPatchRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

func (r ClientPatchRequest) ToPatch() client.Patch {
	return client.Patch{Name: r.Name, Contact: r.Contact}
}

// ClientResponse 客户响应
type ClientResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"Maria"`
	Contact   string `json:"contact" example:"+55 11 99999-0000"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

func ToClientResponse(c *client.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		CreatedAt: c.CreatedAt.Format(DateTimeLayout),
		UpdatedAt: c.UpdatedAt.Format(DateTimeLayout),
	}
}

func ToClientList(clients []*client.Client) []*ClientResponse {
	out := make([]*ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, ToClientResponse(c))
	}
	return out
}

// ListQuery 列表查询参数,q非空时按名称模糊搜索
type ListQuery struct {
	Q string `form:"q" binding:"omitempty,max=100" example:"pão"`
}

// NameCheckQuery 名称可用性检查参数
type NameCheckQuery struct {
	Name      string `form:"name" example:"Pão de mel"`
	ExcludeID uint   `form:"exclude_id" example:"0"`
}

// NameCheckResponse 名称检查结果,message为空表示可用
type NameCheckResponse struct {
	Name    string `json:"name"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// FormResult 表单提交结果
// fields包含表单的全部字段,值为空字符串表示该字段通过校验
type FormResult struct {
	Fields  map[string]string `json:"fields"`
	Product *ProductResponse  `json:"product,omitempty"`
	Client  *ClientResponse   `json:"client,omitempty"`
}
