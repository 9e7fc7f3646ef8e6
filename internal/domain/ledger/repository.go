package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// ListFilter 交易列表过滤条件,零值表示不过滤
type ListFilter struct {
	ClientID *uint
	Kind     Kind
	Status   Status
}

// TransactionRepository 交易仓储接口
type TransactionRepository interface {
	// Create 先插入交易行,再插入全部明细(需在事务中调用)
	Create(ctx context.Context, txn *Transaction) error

	// FindByID 查询交易,包含明细与付款
	FindByID(ctx context.Context, id uint) (*Transaction, error)

	// LockByID 悲观锁查询(不加载明细),用于串行化同一交易上的付款
	LockByID(ctx context.Context, id uint) (*Transaction, error)

	List(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	// Update 只写入Patch中非nil的列
	Update(ctx context.Context, id uint, patch TransactionPatch) error

	// UpdateBalance 写入未结金额与推导出的状态,调用方需先LockByID
	UpdateBalance(ctx context.Context, id uint, openValue decimal.Decimal, status Status) error

	UpdateStatus(ctx context.Context, id uint, status Status) error

	FindItemByID(ctx context.Context, id uint) (*Item, error)
}

// PaymentRepository 付款仓储接口
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uint) (*Payment, error)
	ListByTransaction(ctx context.Context, transactionID uint) ([]*Payment, error)
}

// ProductionRepository 生产记录仓储接口
type ProductionRepository interface {
	Create(ctx context.Context, production *Production) error
	FindByID(ctx context.Context, id uint) (*Production, error)

	// ListByProduct productID为0时返回全部
	ListByProduct(ctx context.Context, productID uint) ([]*Production, error)
}
