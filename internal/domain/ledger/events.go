package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 领域事件类型(同时作为消息的routing key)
const (
	EventTransactionRegistered = "transaction.registered"
	EventTransactionCancelled  = "transaction.cancelled"
	EventPaymentRegistered     = "payment.registered"
	EventProductionRegistered  = "production.registered"
)

// EventPublisher 领域事件发布者
// 事件在事务提交之后发布,发布失败只记录日志,不影响已提交的数据
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

// TransactionRegistered 交易登记事件
type TransactionRegistered struct {
	TransactionID uint            `json:"transaction_id"`
	ClientID      *uint           `json:"client_id,omitempty"`
	Kind          Kind            `json:"kind"`
	Status        Status          `json:"status"`
	Date          time.Time       `json:"date"`
	TotalValue    decimal.Decimal `json:"total_value"`
	OpenValue     decimal.Decimal `json:"open_value"`
	Items         []ItemEvent     `json:"items"`
}

// ItemEvent 事件中的明细
type ItemEvent struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitValue decimal.Decimal `json:"unit_value"`
}

// TransactionCancelled 交易取消事件
type TransactionCancelled struct {
	TransactionID uint      `json:"transaction_id"`
	Kind          Kind      `json:"kind"`
	CancelledAt   time.Time `json:"cancelled_at"`
}

// PaymentRegistered 付款登记事件
type PaymentRegistered struct {
	PaymentID     uint            `json:"payment_id"`
	TransactionID uint            `json:"transaction_id"`
	Value         decimal.Decimal `json:"value"`
	Date          time.Time       `json:"date"`
	OpenValue     decimal.Decimal `json:"open_value"`
	Status        Status          `json:"status"`
}

// ProductionRegistered 生产登记事件
type ProductionRegistered struct {
	ProductionID uint      `json:"production_id"`
	ProductID    uint      `json:"product_id"`
	Quantity     int       `json:"quantity"`
	Date         time.Time `json:"date"`
}

// NewTransactionRegistered 由已持久化的交易构造事件
func NewTransactionRegistered(txn *Transaction) TransactionRegistered {
	items := make([]ItemEvent, len(txn.Items))
	for i, item := range txn.Items {
		items[i] = ItemEvent{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitValue: item.UnitValue,
		}
	}
	return TransactionRegistered{
		TransactionID: txn.ID,
		ClientID:      txn.ClientID,
		Kind:          txn.Kind,
		Status:        txn.Status,
		Date:          txn.Date,
		TotalValue:    txn.TotalValue,
		OpenValue:     txn.OpenValue,
		Items:         items,
	}
}
