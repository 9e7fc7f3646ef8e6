package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// transactionRepository 交易仓储实现
// 教学要点:
// 1. 交易行与明细行在同一事务中写入(Create必须在TxManager中调用)
// 2. 付款对未结金额的修改是数据库端的原子表达式,不做"读出来再写回去"
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓储
func NewTransactionRepository(db *gorm.DB) ledger.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

// Create 先插入交易,再批量插入明细并回填ID
func (r *transactionRepository) Create(ctx context.Context, txn *ledger.Transaction) error {
	db := r.getDB(ctx)

	model := &TransactionModel{
		ClientID:   txn.ClientID,
		Date:       txn.Date,
		Kind:       string(txn.Kind),
		Status:     string(txn.Status),
		TotalValue: txn.TotalValue,
		OpenValue:  txn.OpenValue,
	}
	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "创建交易失败")
	}

	txn.ID = model.ID
	txn.CreatedAt = model.CreatedAt
	txn.UpdatedAt = model.UpdatedAt

	if len(txn.Items) == 0 {
		return nil
	}

	items := make([]ItemModel, len(txn.Items))
	for i, item := range txn.Items {
		items[i] = ItemModel{
			TransactionID: model.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitValue:     item.UnitValue,
		}
	}
	if err := db.Omit(clause.Associations).Create(&items).Error; err != nil {
		return translateError(err, "创建交易明细失败")
	}

	for i := range items {
		txn.Items[i].ID = items[i].ID
		txn.Items[i].TransactionID = model.ID
	}
	return nil
}

// FindByID 查询交易及其明细、付款
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*ledger.Transaction, error) {
	db := r.getDB(ctx)

	var model TransactionModel
	if err := db.First(&model, id).Error; err != nil {
		return nil, r.notFoundOr(err, id, "查询交易失败")
	}
	txn := toTransactionEntity(&model)

	var items []ItemModel
	if err := db.Where("transaction_id = ?", id).Order("id ASC").Find(&items).Error; err != nil {
		return nil, translateError(err, "查询交易明细失败")
	}
	txn.Items = make([]ledger.Item, len(items))
	for i := range items {
		txn.Items[i] = toItemEntity(&items[i])
	}

	var payments []PaymentModel
	if err := db.Where("transaction_id = ?", id).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, translateError(err, "查询付款记录失败")
	}
	txn.Payments = make([]ledger.Payment, len(payments))
	for i := range payments {
		txn.Payments[i] = *toPaymentEntity(&payments[i])
	}

	return txn, nil
}

// LockByID 悲观锁查询交易(不加载明细)
func (r *transactionRepository) LockByID(ctx context.Context, id uint) (*ledger.Transaction, error) {
	var model TransactionModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.notFoundOr(err, id, "锁定交易失败")
	}
	return toTransactionEntity(&model), nil
}

// List 按条件查询交易列表(不加载明细),按日期倒序
func (r *transactionRepository) List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := r.getDB(ctx).Model(&TransactionModel{})
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var models []TransactionModel
	if err := query.Order("date DESC, id DESC").Find(&models).Error; err != nil {
		return nil, translateError(err, "查询交易列表失败")
	}

	txns := make([]*ledger.Transaction, len(models))
	for i := range models {
		txns[i] = toTransactionEntity(&models[i])
	}
	return txns, nil
}

// Update 只写入Patch中非nil的列
func (r *transactionRepository) Update(ctx context.Context, id uint, patch ledger.TransactionPatch) error {
	updates := make(map[string]interface{})
	if patch.ClientID != nil {
		updates["client_id"] = *patch.ClientID
	}
	if patch.Date != nil {
		updates["date"] = ledger.DateOf(*patch.Date)
	}
	if len(updates) == 0 {
		return ledger.ErrEmptyPatch
	}

	result := r.getDB(ctx).Model(&TransactionModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error, "更新交易失败")
	}
	return r.checkAffected(ctx, result.RowsAffected, id)
}

// UpdateBalance 写入付款后的未结金额与状态
// 教学要点:
// 1. 金额在Go侧用decimal计算,这里只写绝对值(SQLite的decimal列按REAL存储,在SQL里做减法会有浮点误差)
// 2. 调用方必须先用LockByID锁定该行,锁保证并发付款不会丢失更新
// 3. 已取消的交易不会被改回open/closed
func (r *transactionRepository) UpdateBalance(ctx context.Context, id uint, openValue decimal.Decimal, status ledger.Status) error {
	result := r.getDB(ctx).Model(&TransactionModel{}).
		Where("id = ? AND status <> ?", id, string(ledger.StatusCancelled)).
		Updates(map[string]interface{}{
			"open_value": openValue,
			"status":     string(status),
		})
	if result.Error != nil {
		return translateError(result.Error, "更新未结金额失败")
	}
	return r.checkAffected(ctx, result.RowsAffected, id)
}

// UpdateStatus 直接设置状态(用于取消)
func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint, status ledger.Status) error {
	result := r.getDB(ctx).Model(&TransactionModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return translateError(result.Error, "更新交易状态失败")
	}
	return r.checkAffected(ctx, result.RowsAffected, id)
}

// FindItemByID 查询单条明细
func (r *transactionRepository) FindItemByID(ctx context.Context, id uint) (*ledger.Item, error) {
	var model ItemModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrItemNotFound.WithMessagef("交易明细#%d不存在", id)
		}
		return nil, translateError(err, "查询交易明细失败")
	}
	item := toItemEntity(&model)
	return &item, nil
}

func (r *transactionRepository) checkAffected(ctx context.Context, affected int64, id uint) error {
	if affected > 0 {
		return nil
	}
	var count int64
	if err := r.getDB(ctx).Model(&TransactionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err, "查询交易失败")
	}
	if count == 0 {
		return ledger.ErrTransactionNotFound.WithMessagef("交易#%d不存在", id)
	}
	return nil
}

func (r *transactionRepository) notFoundOr(err error, id uint, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrTransactionNotFound.WithMessagef("交易#%d不存在", id)
	}
	return translateError(err, message)
}
