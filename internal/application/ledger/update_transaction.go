package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// UpdateTransaction 修改交易的客户或日期
// 类型、金额、状态由登记与付款推导,不能直接修改
func (e *Engine) UpdateTransaction(ctx context.Context, id uint, patch ledger.TransactionPatch) (txn *ledger.Transaction, err error) {
	ctx, end := e.startOperation(ctx, "update_transaction",
		attribute.Int64("ledger.transaction_id", int64(id)),
	)
	defer func() { end(err) }()

	if patch.IsEmpty() {
		return nil, ledger.ErrEmptyPatch
	}

	err = e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := e.transactions.LockByID(txCtx, id); err != nil {
			return err
		}
		if patch.ClientID != nil {
			if _, err := e.clients.FindByID(txCtx, *patch.ClientID); err != nil {
				return err
			}
		}
		if err := e.transactions.Update(txCtx, id, patch); err != nil {
			return err
		}

		reloaded, err := e.transactions.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		txn = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("交易已修改", zap.Uint("transaction_id", id))
	return txn, nil
}

// CancelTransaction 取消交易
// 只改变状态: 已扣减的库存与已登记的付款保持不变,取消后不再接受付款
func (e *Engine) CancelTransaction(ctx context.Context, id uint) (txn *ledger.Transaction, err error) {
	ctx, end := e.startOperation(ctx, "cancel_transaction",
		attribute.Int64("ledger.transaction_id", int64(id)),
	)
	defer func() { end(err) }()

	err = e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		locked, err := e.transactions.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := locked.Cancel(); err != nil {
			return err
		}
		if err := e.transactions.UpdateStatus(txCtx, id, ledger.StatusCancelled); err != nil {
			return err
		}
		txn = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.events.Publish(ctx, ledger.EventTransactionCancelled, ledger.TransactionCancelled{
		TransactionID: txn.ID,
		Kind:          txn.Kind,
		CancelledAt:   time.Now().UTC(),
	})
	e.logger.Info("交易已取消", zap.Uint("transaction_id", id))
	return txn, nil
}
