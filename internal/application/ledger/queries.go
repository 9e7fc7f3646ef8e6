package ledger

import (
	"context"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// GetTransaction 查询交易(含明细与付款)
func (e *Engine) GetTransaction(ctx context.Context, id uint) (*ledger.Transaction, error) {
	return e.transactions.FindByID(ctx, id)
}

// ListTransactions 按客户/类型/状态过滤
func (e *Engine) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	return e.transactions.List(ctx, filter)
}

// ListPayments 某笔交易的付款记录,交易不存在时返回NotFound
func (e *Engine) ListPayments(ctx context.Context, transactionID uint) ([]*ledger.Payment, error) {
	if _, err := e.transactions.FindByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return e.payments.ListByTransaction(ctx, transactionID)
}

// ListProductions productID为0时返回全部生产记录
func (e *Engine) ListProductions(ctx context.Context, productID uint) ([]*ledger.Production, error) {
	if productID != 0 {
		if _, err := e.products.FindByID(ctx, productID); err != nil {
			return nil, err
		}
	}
	return e.productions.ListByProduct(ctx, productID)
}

func (e *Engine) GetItem(ctx context.Context, id uint) (*ledger.Item, error) {
	return e.transactions.FindItemByID(ctx, id)
}

func (e *Engine) GetPayment(ctx context.Context, id uint) (*ledger.Payment, error) {
	return e.payments.FindByID(ctx, id)
}

func (e *Engine) GetProduction(ctx context.Context, id uint) (*ledger.Production, error) {
	return e.productions.FindByID(ctx, id)
}
