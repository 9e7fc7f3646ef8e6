package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// ItemRequest 交易明细
type ItemRequest struct {
	ProductID uint            `json:"product_id" example:"1"`
	Quantity  int             `json:"quantity" example:"3"`
	UnitValue decimal.Decimal `json:"unit_value" swaggertype:"string" example:"5.00"`
}

// TransactionRequest 登记交易请求
// kind: P=订单 V=销售; date为空时取当天
type TransactionRequest struct {
	ClientID       *uint           `json:"client_id,omitempty" example:"1"`
	Kind           string          `json:"kind" example:"V"`
	Items          []ItemRequest   `json:"items"`
	Date           string          `json:"date,omitempty" example:"2024-01-15"`
	InitialPayment decimal.Decimal `json:"initial_payment" swaggertype:"string" example:"0"`
}

// TransactionPatchRequest 修改交易(只允许客户与日期)
type TransactionPatchRequest struct {
	ClientID *uint   `json:"client_id,omitempty" example:"2"`
	Date     *string `json:"date,omitempty" example:"2024-01-16"`
}

// TransactionListQuery 交易列表过滤
type TransactionListQuery struct {
	ClientID *uint  `form:"client_id" example:"1"`
	Kind     string `form:"kind" binding:"omitempty,oneof=P V" example:"V"`
	Status   string `form:"status" binding:"omitempty,oneof=open closed cancelled" example:"open"`
}

// ToFilter 转换为仓储过滤条件
func (q TransactionListQuery) ToFilter() ledger.ListFilter {
	return ledger.ListFilter{
		ClientID: q.ClientID,
		Kind:     ledger.Kind(q.Kind),
		Status:   ledger.Status(q.Status),
	}
}

// PaymentRequest 登记付款
type PaymentRequest struct {
	Value decimal.Decimal `json:"value" swaggertype:"string" example:"40.00"`
	Date  string          `json:"date,omitempty" example:"2024-01-20"`
}

// ProductionRequest 登记生产记录
type ProductionRequest struct {
	ProductID uint   `json:"product_id" example:"1"`
	Quantity  int    `json:"quantity" example:"50"`
	Date      string `json:"date,omitempty" example:"2024-01-15"`
}

// ProductionListQuery product_id为空时返回全部
type ProductionListQuery struct {
	ProductID uint `form:"product_id" example:"1"`
}

// ItemResponse 交易明细响应
type ItemResponse struct {
	ID            uint   `json:"id" example:"1"`
	TransactionID uint   `json:"transaction_id" example:"1"`
	ProductID     uint   `json:"product_id" example:"1"`
	Quantity      int    `json:"quantity" example:"3"`
	UnitValue     string `json:"unit_value" example:"5.00"`
	Subtotal      string `json:"subtotal" example:"15.00"`
}

// PaymentResponse 付款响应
type PaymentResponse struct {
	ID            uint   `json:"id" example:"1"`
	TransactionID uint   `json:"transaction_id" example:"1"`
	Date          string `json:"date" example:"2024-01-20"`
	Value         string `json:"value" example:"40.00"`
}

// TransactionResponse 交易响应
type TransactionResponse struct {
	ID         uint   `json:"id" example:"1"`
	ClientID   *uint  `json:"client_id,omitempty" example:"1"`
	Date       string `json:"date" example:"2024-01-15"`
	Kind       string `json:"kind" example:"V"`
	Status     string `json:"status" example:"open"`
	TotalValue string `json:"total_value" example:"100.00"`
	OpenValue  string `json:"open_value" example:"60.00"`
	// SettledValue = total_value - open_value,包含订单首付,不一定等于payments之和
	SettledValue string             `json:"settled_value" example:"40.00"`
	Items        []*ItemResponse    `json:"items,omitempty"`
	Payments     []*PaymentResponse `json:"payments,omitempty"`
	CreatedAt    string             `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ProductionResponse 生产记录响应
type ProductionResponse struct {
	ID        uint   `json:"id" example:"1"`
	ProductID uint   `json:"product_id" example:"1"`
	Date      string `json:"date" example:"2024-01-15"`
	Quantity  int    `json:"quantity" example:"50"`
}

func ToItemResponse(item *ledger.Item) *ItemResponse {
	return &ItemResponse{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitValue:     item.UnitValue.StringFixed(2),
		Subtotal:      item.Subtotal().StringFixed(2),
	}
}

func ToPaymentResponse(p *ledger.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		Date:          p.Date.Format(DateLayout),
		Value:         p.Value.StringFixed(2),
	}
}

func ToPaymentList(payments []*ledger.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToPaymentResponse(p))
	}
	return out
}

// ToTransactionResponse 交易 → 响应,明细与付款随交易一起返回
func ToTransactionResponse(t *ledger.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:           t.ID,
		ClientID:     t.ClientID,
		Date:         t.Date.Format(DateLayout),
		Kind:         string(t.Kind),
		Status:       string(t.Status),
		TotalValue:   t.TotalValue.StringFixed(2),
		OpenValue:    t.OpenValue.StringFixed(2),
		SettledValue: t.SettledValue().StringFixed(2),
		CreatedAt:    t.CreatedAt.Format(DateTimeLayout),
	}
	for i := range t.Items {
		resp.Items = append(resp.Items, ToItemResponse(&t.Items[i]))
	}
	for i := range t.Payments {
		resp.Payments = append(resp.Payments, ToPaymentResponse(&t.Payments[i]))
	}
	return resp
}

func ToTransactionList(txns []*ledger.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

func ToProductionResponse(p *ledger.Production) *ProductionResponse {
	return &ProductionResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Date:      p.Date.Format(DateLayout),
		Quantity:  p.Quantity,
	}
}

func ToProductionList(productions []*ledger.Production) []*ProductionResponse {
	out := make([]*ProductionResponse, 0, len(productions))
	for _, p := range productions {
		out = append(out, ToProductionResponse(p))
	}
	return out
}
