package ledger

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/ledger"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/metrics"
)

// RegisterProduction 登记生产记录
// 生产记录只追加,不改变商品库存(库存由销售与手工调整维护)
func (e *Engine) RegisterProduction(ctx context.Context, productID uint, quantity int, date *time.Time) (production *ledger.Production, err error) {
	ctx, end := e.startOperation(ctx, "register_production",
		attribute.Int64("ledger.product_id", int64(productID)),
	)
	defer func() { end(err) }()

	if quantity <= 0 {
		return nil, apperrors.NewFieldError(ledger.FieldQuantity, ledger.MsgQuantityPositive)
	}

	err = e.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := e.products.FindByID(txCtx, productID); err != nil {
			return err
		}
		production = &ledger.Production{
			ProductID: productID,
			Date:      txDate(date),
			Quantity:  quantity,
		}
		return e.productions.Create(txCtx, production)
	})
	if err != nil {
		return nil, err
	}

	metrics.ProductionsRegisteredTotal.Inc()
	e.events.Publish(ctx, ledger.EventProductionRegistered, ledger.ProductionRegistered{
		ProductionID: production.ID,
		ProductID:    productID,
		Quantity:     quantity,
		Date:         production.Date,
	})
	e.logger.Info("生产记录已登记",
		zap.Uint("production_id", production.ID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return production, nil
}
