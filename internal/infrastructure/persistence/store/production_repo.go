package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/masses/internal/domain/ledger"
)

// productionRepository 生产记录仓储实现(只追加)
type productionRepository struct {
	db *gorm.DB
}

// NewProductionRepository 创建生产记录仓储
func NewProductionRepository(db *gorm.DB) ledger.ProductionRepository {
	return &productionRepository{db: db}
}

func (r *productionRepository) Create(ctx context.Context, p *ledger.Production) error {
	model := &ProductionModel{
		ProductID: p.ProductID,
		Date:      p.Date,
		Quantity:  p.Quantity,
	}
	if err := getDB(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "创建生产记录失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	return nil
}

func (r *productionRepository) FindByID(ctx context.Context, id uint) (*ledger.Production, error) {
	var model ProductionModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrProductionNotFound.WithMessagef("生产记录#%d不存在", id)
		}
		return nil, translateError(err, "查询生产记录失败")
	}
	return toProductionEntity(&model), nil
}

func (r *productionRepository) ListByProduct(ctx context.Context, productID uint) ([]*ledger.Production, error) {
	query := getDB(ctx, r.db).Model(&ProductionModel{})
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	}

	var models []ProductionModel
	if err := query.Order("date DESC, id DESC").Find(&models).Error; err != nil {
		return nil, translateError(err, "查询生产记录失败")
	}

	productions := make([]*ledger.Production, len(models))
	for i := range models {
		productions[i] = toProductionEntity(&models[i])
	}
	return productions, nil
}
