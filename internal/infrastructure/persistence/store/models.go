package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/domain/product"
)

// ProductModel GORM商品模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. 名称唯一索引是重名校验的最终保证
// 3. current_stock没有下限约束(销售允许出现负库存)
type ProductModel struct {
	ID              uint            `gorm:"primaryKey"`
	Name            string          `gorm:"uniqueIndex;size:120;not null;comment:商品名称"`
	Type            string          `gorm:"index;size:60;not null;comment:类型"`
	ProductionPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_products_production_price,production_price >= 0;comment:生产成本"`
	SalePrice       decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_products_sale_price,sale_price >= 0;comment:售价"`
	MinStock        int             `gorm:"not null;default:0;check:chk_products_min_stock,min_stock >= 0;comment:最低库存"`
	CurrentStock    int             `gorm:"not null;default:0;comment:当前库存"`
	CreatedAt       time.Time       `gorm:"comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// ClientModel GORM客户模型,名称不唯一
type ClientModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:120;not null;comment:客户名称"`
	Contact   *string   `gorm:"size:255;comment:联系方式"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (ClientModel) TableName() string {
	return "clients"
}

// TransactionModel GORM交易模型
// 明细与付款通过子表的transaction_id关联,按需单独查询
type TransactionModel struct {
	ID         uint            `gorm:"primaryKey"`
	ClientID   *uint           `gorm:"index;comment:客户ID(散客为空)"`
	Client     *ClientModel    `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Date       time.Time       `gorm:"type:date;index;not null;comment:交易日期"`
	Kind       string          `gorm:"size:1;index;not null;check:chk_transactions_kind,kind IN ('P','V');comment:类型(P订单V销售)"`
	Status     string          `gorm:"size:16;index;not null;check:chk_transactions_status,status IN ('open','closed','cancelled');comment:状态"`
	TotalValue decimal.Decimal `gorm:"type:decimal(12,2);not null;check:chk_transactions_total_value,total_value >= 0;comment:总金额"`
	OpenValue  decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:未结金额(超付时为负)"`
	CreatedAt  time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time       `gorm:"comment:更新时间"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// ItemModel GORM交易明细模型
// 1. 随交易级联删除
// 2. UnitValue是登记时的价格快照
type ItemModel struct {
	ID            uint              `gorm:"primaryKey"`
	TransactionID uint              `gorm:"index;not null;comment:交易ID"`
	Transaction   *TransactionModel `gorm:"foreignKey:TransactionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ProductID     uint              `gorm:"index;not null;comment:商品ID"`
	Product       *ProductModel     `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Quantity      int               `gorm:"not null;check:chk_transaction_items_quantity,quantity > 0;comment:数量"`
	UnitValue     decimal.Decimal   `gorm:"type:decimal(12,2);not null;check:chk_transaction_items_unit_value,unit_value >= 0;comment:登记时单价"`
}

func (ItemModel) TableName() string {
	return "transaction_items"
}

// PaymentModel GORM付款模型
type PaymentModel struct {
	ID            uint              `gorm:"primaryKey"`
	TransactionID uint              `gorm:"index;not null;comment:交易ID"`
	Transaction   *TransactionModel `gorm:"foreignKey:TransactionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Date          time.Time         `gorm:"type:date;not null;comment:付款日期"`
	Value         decimal.Decimal   `gorm:"type:decimal(12,2);not null;check:chk_payments_value,value >= 0;comment:金额"`
	CreatedAt     time.Time         `gorm:"comment:创建时间"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// ProductionModel GORM生产记录模型(只追加)
type ProductionModel struct {
	ID        uint          `gorm:"primaryKey"`
	ProductID uint          `gorm:"index;not null;comment:商品ID"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Date      time.Time     `gorm:"type:date;not null;comment:生产日期"`
	Quantity  int           `gorm:"not null;check:chk_productions_quantity,quantity > 0;comment:数量"`
	CreatedAt time.Time     `gorm:"comment:创建时间"`
}

func (ProductionModel) TableName() string {
	return "productions"
}

// =========================================
// 模型 ↔ 领域实体转换
// =========================================

func toProductEntity(m *ProductModel) *product.Product {
	return &product.Product{
		ID:              m.ID,
		Name:            m.Name,
		Type:            m.Type,
		ProductionPrice: m.ProductionPrice,
		SalePrice:       m.SalePrice,
		MinStock:        m.MinStock,
		CurrentStock:    m.CurrentStock,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toClientEntity(m *ClientModel) *client.Client {
	c := &client.Client{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Contact != nil {
		c.Contact = *m.Contact
	}
	return c
}

func toTransactionEntity(m *TransactionModel) *ledger.Transaction {
	return &ledger.Transaction{
		ID:         m.ID,
		ClientID:   m.ClientID,
		Date:       m.Date,
		Kind:       ledger.Kind(m.Kind),
		Status:     ledger.Status(m.Status),
		TotalValue: m.TotalValue,
		OpenValue:  m.OpenValue,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toItemEntity(m *ItemModel) ledger.Item {
	return ledger.Item{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		UnitValue:     m.UnitValue,
	}
}

func toPaymentEntity(m *PaymentModel) *ledger.Payment {
	return &ledger.Payment{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Value:         m.Value,
		CreatedAt:     m.CreatedAt,
	}
}

func toProductionEntity(m *ProductionModel) *ledger.Production {
	return &ledger.Production{
		ID:        m.ID,
		ProductID: m.ProductID,
		Date:      m.Date,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
}

// nullableString 空字符串存为NULL
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
