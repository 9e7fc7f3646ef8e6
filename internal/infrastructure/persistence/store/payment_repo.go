package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// paymentRepository 付款仓储实现
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建付款仓储
func NewPaymentRepository(db *gorm.DB) ledger.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *ledger.Payment) error {
	model := &PaymentModel{
		TransactionID: p.TransactionID,
		Date:          p.Date,
		Value:         p.Value,
	}
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "创建付款记录失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*ledger.Payment, error) {
	var model PaymentModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrPaymentNotFound.WithMessagef("付款记录#%d不存在", id)
		}
		return nil, translateError(err, "查询付款记录失败")
	}
	return toPaymentEntity(&model), nil
}

func (r *paymentRepository) ListByTransaction(ctx context.Context, transactionID uint) ([]*ledger.Payment, error) {
	var models []PaymentModel
	err := getDB(ctx, r.db).
		Where("transaction_id = ?", transactionID).
		Order("date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, translateError(err, "查询付款记录失败")
	}

	payments := make([]*ledger.Payment, len(models))
	for i := range models {
		payments[i] = toPaymentEntity(&models[i])
	}
	return payments, nil
}
