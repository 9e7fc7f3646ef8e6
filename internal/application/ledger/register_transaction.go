package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/pkg/metrics"
	"github.com/xiebiao/masses/pkg/validator"
)

// ItemInput 交易明细输入
type ItemInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitValue decimal.Decimal `json:"unit_value" validate:"gte=0"`
}

// RegisterTransactionCommand 登记交易参数
type RegisterTransactionCommand struct {
	ClientID       *uint           `json:"client_id"`
	Kind           ledger.Kind     `json:"kind" validate:"required,oneof=P V"`
	Items          []ItemInput     `json:"items" validate:"required,min=1,dive"`
	Date           *time.Time      `json:"date"`
	InitialPayment decimal.Decimal `json:"initial_payment" validate:"gte=0"`
}

// RegisterTransaction 登记订单(P)或销售(V)
//
// 教学要点: 整个流程在一个事务中完成,任一步失败全部回滚
//  1. 校验明细: 非空、数量>0、单价>=0、商品存在
//  2. 计算总额与未结金额: open = total - initialPayment, open<=0 即为closed
//  3. 插入交易与明细(单价是登记时的快照)
//  4. 销售: 逐个商品原子扣减库存 current_stock = current_stock - qty
//     按商品ID升序扣减,多个事务之间加锁顺序一致,避免死锁
//  5. 销售且有首付: 插入一条付款记录,日期与交易相同
//
// 订单只记录承诺,不影响库存
func (e *Engine) RegisterTransaction(ctx context.Context, cmd RegisterTransactionCommand) (txn *ledger.Transaction, err error) {
	ctx, end := e.startOperation(ctx, "register_transaction",
		attribute.String("ledger.kind", string(cmd.Kind)),
		attribute.Int("ledger.items", len(cmd.Items)),
	)
	defer func() { end(err) }()

	if err := validator.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	items := make([]ledger.Item, len(cmd.Items))
	for i, in := range cmd.Items {
		items[i] = ledger.Item{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitValue: in.UnitValue,
		}
	}

	txn, err = ledger.NewTransaction(cmd.ClientID, cmd.Kind, txDate(cmd.Date), items, cmd.InitialPayment)
	if err != nil {
		return nil, err
	}

	productIDs, quantities := aggregateQuantities(items)

	err = e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 每次重试都从头执行,ID需要重置
		txn.ID = 0
		txn.Payments = nil

		if txn.ClientID != nil {
			if _, err := e.clients.FindByID(txCtx, *txn.ClientID); err != nil {
				return err
			}
		}
		for _, id := range productIDs {
			if _, err := e.products.FindByID(txCtx, id); err != nil {
				return err
			}
		}

		if err := e.transactions.Create(txCtx, txn); err != nil {
			return err
		}

		if !txn.Kind.AffectsStock() {
			return nil
		}

		for _, id := range productIDs {
			if err := e.products.AdjustStock(txCtx, id, -quantities[id]); err != nil {
				return err
			}
		}

		if cmd.InitialPayment.IsPositive() {
			payment := &ledger.Payment{
				TransactionID: txn.ID,
				Date:          txn.Date,
				Value:         cmd.InitialPayment,
			}
			if err := e.payments.Create(txCtx, payment); err != nil {
				return err
			}
			txn.Payments = []ledger.Payment{*payment}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsRegisteredTotal.WithLabelValues(string(txn.Kind)).Inc()
	if txn.Kind.AffectsStock() {
		units := 0
		for _, q := range quantities {
			units += q
		}
		metrics.StockUnitsSoldTotal.Add(float64(units))
		e.invalidateProducts(ctx, productIDs)
	}
	if len(txn.Payments) > 0 {
		metrics.PaymentsRegisteredTotal.Inc()
	}

	e.events.Publish(ctx, ledger.EventTransactionRegistered, ledger.NewTransactionRegistered(txn))
	e.logger.Info("交易已登记",
		zap.Uint("transaction_id", txn.ID),
		zap.Stringer("kind", txn.Kind),
		zap.String("total_value", txn.TotalValue.String()),
		zap.String("open_value", txn.OpenValue.String()),
		zap.String("status", string(txn.Status)),
	)
	return txn, nil
}

// aggregateQuantities 按商品汇总数量,返回升序商品ID
func aggregateQuantities(items []ledger.Item) ([]uint, map[uint]int) {
	quantities := make(map[uint]int, len(items))
	for _, item := range items {
		quantities[item.ProductID] += item.Quantity
	}

	ids := make([]uint, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, quantities
}
