package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// Kind 交易类型
// P=订单(Order,不影响库存) V=销售(Sale,扣减库存)
type Kind string

const (
	KindOrder Kind = "P"
	KindSale  Kind = "V"
)

// Valid 是否为合法的交易类型
func (k Kind) Valid() bool {
	return k == KindOrder || k == KindSale
}

// AffectsStock 只有销售会调整库存
func (k Kind) AffectsStock() bool {
	return k == KindSale
}

func (k Kind) String() string {
	switch k {
	case KindOrder:
		return "订单"
	case KindSale:
		return "销售"
	default:
		return "未知类型"
	}
}

// Status 交易状态
// open/closed由未结金额推导,cancelled只能通过CancelTransaction进入
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// DeriveStatus 根据未结金额推导状态: open_value <= 0 即结清
func DeriveStatus(openValue decimal.Decimal) Status {
	if openValue.LessThanOrEqual(decimal.Zero) {
		return StatusClosed
	}
	return StatusOpen
}

// Transaction 交易(聚合根)
// 设计说明:
// 1. Items随交易一起创建,不单独修改(级联删除)
// 2. TotalValue在创建时确定,OpenValue随付款递减,允许为负(超付不截断)
// 3. Payments只引用交易,不属于聚合内部
type Transaction struct {
	ID         uint
	ClientID   *uint // 可选,散客交易为nil
	Date       time.Time
	Kind       Kind
	Status     Status
	TotalValue decimal.Decimal
	OpenValue  decimal.Decimal
	Items      []Item
	Payments   []Payment
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item 交易明细
// UnitValue是登记时的单价快照,之后商品改价不影响历史交易
type Item struct {
	ID            uint
	TransactionID uint
	ProductID     uint
	Quantity      int
	UnitValue     decimal.Decimal
}

// Subtotal 小计 = 数量 × 单价
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment 付款记录
type Payment struct {
	ID            uint
	TransactionID uint
	Date          time.Time
	Value         decimal.Decimal
	CreatedAt     time.Time
}

// Production 生产记录(只追加,不影响库存)
type Production struct {
	ID        uint
	ProductID uint
	Date      time.Time
	Quantity  int
	CreatedAt time.Time
}

// CalculateTotal 计算明细合计
func CalculateTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ValidateItems 校验明细: 非空, 数量>0, 单价>=0且最多两位小数
// 所有问题一次性返回,键为 items / items[i].quantity / items[i].unit_value
func ValidateItems(items []Item) error {
	fields := apperrors.FieldErrors{}
	if len(items) == 0 {
		fields.Set(FieldItems, MsgItemsRequired)
		return fields.Err()
	}
	for i, item := range items {
		if item.ProductID == 0 {
			fields.Set(fmt.Sprintf("items[%d].product_id", i), validation.MsgRequired)
		}
		if item.Quantity <= 0 {
			fields.Set(fmt.Sprintf("items[%d].quantity", i), MsgQuantityPositive)
		}
		if msg := validation.CheckMoney(item.UnitValue); msg != "" {
			fields.Set(fmt.Sprintf("items[%d].unit_value", i), msg)
		}
	}
	return fields.Err()
}

// NewTransaction 创建交易(工厂方法)
// 在内存中完成金额与状态推导,持久化由仓储负责
func NewTransaction(clientID *uint, kind Kind, date time.Time, items []Item, initialPayment decimal.Decimal) (*Transaction, error) {
	if !kind.Valid() {
		return nil, apperrors.NewFieldError(FieldKind, MsgInvalidKind)
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	if msg := validation.CheckMoney(initialPayment); msg != "" {
		return nil, apperrors.NewFieldError(FieldInitialPayment, msg)
	}

	total := CalculateTotal(items)
	open := total.Sub(initialPayment)
	now := time.Now()
	return &Transaction{
		ClientID:   clientID,
		Date:       DateOf(date),
		Kind:       kind,
		Status:     DeriveStatus(open),
		TotalValue: total,
		OpenValue:  open,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanTransitionTo 状态机: open<->closed由付款推导, open/closed->cancelled, cancelled为终态
func (t *Transaction) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusOpen:      {StatusClosed, StatusCancelled},
		StatusClosed:    {StatusOpen, StatusCancelled},
		StatusCancelled: {},
	}
	for _, allowed := range transitions[t.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Cancel 取消交易,不回滚库存与付款
func (t *Transaction) Cancel() error {
	if !t.CanTransitionTo(StatusCancelled) {
		return ErrTransactionCancelled
	}
	t.Status = StatusCancelled
	t.UpdatedAt = time.Now()
	return nil
}

// CanAcceptPayment 已取消的交易不再接受付款
func (t *Transaction) CanAcceptPayment() error {
	if t.Status == StatusCancelled {
		return ErrTransactionCancelled
	}
	return nil
}

// ApplyPayment 在内存中应用一笔付款,结果由仓储UpdateBalance写回
func (t *Transaction) ApplyPayment(value decimal.Decimal) {
	t.OpenValue = t.OpenValue.Sub(value)
	t.Status = DeriveStatus(t.OpenValue)
	t.UpdatedAt = time.Now()
}

// SettledValue 已结算金额 = 总额 - 未结金额
// 订单登记时的首付只体现在未结金额上,没有对应的付款记录,所以这里不等于Σ付款
func (t *Transaction) SettledValue() decimal.Decimal {
	return t.TotalValue.Sub(t.OpenValue)
}

// TransactionPatch 交易的可修改字段
// 类型/金额/状态是推导值,不允许直接修改
type TransactionPatch struct {
	ClientID *uint
	Date     *time.Time
}

func (p TransactionPatch) IsEmpty() bool {
	return p.ClientID == nil && p.Date == nil
}

// DateOf 截断到当天零点(交易/付款/生产只记录日期)
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
