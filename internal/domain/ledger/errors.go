package ledger

import (
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// 字段名
const (
	FieldItems          = "items"
	FieldKind           = "kind"
	FieldClientID       = "client_id"
	FieldInitialPayment = "initial_payment"
	FieldValue          = "value"
	FieldQuantity       = "quantity"
	FieldProductID      = "product_id"
)

// 字段提示
const (
	MsgItemsRequired    = "至少需要一条明细"
	MsgQuantityPositive = "必须大于0"
	MsgInvalidKind      = "交易类型必须是P(订单)或V(销售)"
)

// 交易领域错误定义
var (
	// ErrTransactionNotFound 交易不存在
	ErrTransactionNotFound = apperrors.New(apperrors.ErrCodeTransactionNotFound, "交易不存在")

	// ErrItemNotFound 交易明细不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeRecordNotFound, "交易明细不存在")

	// ErrPaymentNotFound 付款记录不存在
	ErrPaymentNotFound = apperrors.New(apperrors.ErrCodeRecordNotFound, "付款记录不存在")

	// ErrProductionNotFound 生产记录不存在
	ErrProductionNotFound = apperrors.New(apperrors.ErrCodeRecordNotFound, "生产记录不存在")

	// ErrTransactionCancelled 交易已取消,不允许付款或再次取消
	ErrTransactionCancelled = apperrors.New(apperrors.ErrCodeTransactionClosed, "交易已取消")

	// ErrEmptyPatch 没有需要更新的字段
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidParams, "没有需要更新的字段")
)
