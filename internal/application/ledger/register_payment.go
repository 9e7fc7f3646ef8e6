package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/metrics"
)

// RegisterPayment 登记付款
//
// 教学要点:
//  1. 先锁定交易行,同一交易上的付款串行执行
//  2. 未结金额在持锁后用decimal计算,再把绝对值和状态一起写回
//  3. 付款记录与金额更新在同一事务,不会出现"有付款但金额没变"
//
// 超付时未结金额为负数,不截断
func (e *Engine) RegisterPayment(ctx context.Context, transactionID uint, value decimal.Decimal, date *time.Time) (payment *ledger.Payment, err error) {
	ctx, end := e.startOperation(ctx, "register_payment",
		attribute.Int64("ledger.transaction_id", int64(transactionID)),
	)
	defer func() { end(err) }()

	if msg := validation.CheckMoney(value); msg != "" {
		return nil, apperrors.NewFieldError(ledger.FieldValue, msg)
	}

	var updated *ledger.Transaction
	err = e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		txn, err := e.transactions.LockByID(txCtx, transactionID)
		if err != nil {
			return err
		}
		if err := txn.CanAcceptPayment(); err != nil {
			return err
		}

		payment = &ledger.Payment{
			TransactionID: transactionID,
			Date:          txDate(date),
			Value:         value,
		}
		if err := e.payments.Create(txCtx, payment); err != nil {
			return err
		}
		txn.ApplyPayment(value)
		if err := e.transactions.UpdateBalance(txCtx, transactionID, txn.OpenValue, txn.Status); err != nil {
			return err
		}
		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRegisteredTotal.Inc()
	e.events.Publish(ctx, ledger.EventPaymentRegistered, ledger.PaymentRegistered{
		PaymentID:     payment.ID,
		TransactionID: transactionID,
		Value:         payment.Value,
		Date:          payment.Date,
		OpenValue:     updated.OpenValue,
		Status:        updated.Status,
	})
	e.logger.Info("付款已登记",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("transaction_id", transactionID),
		zap.String("value", value.String()),
		zap.String("open_value", updated.OpenValue.String()),
		zap.String("status", string(updated.Status)),
	)
	return payment, nil
}
