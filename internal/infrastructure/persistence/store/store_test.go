package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/infrastructure/config"
)

// newTestDB 每个测试独立的内存SQLite(外键开启,单连接)
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  ":memory:",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestTxManager(db *gorm.DB) *TxManager {
	return NewTxManager(db, config.LedgerConfig{
		MaxRetries:           3,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
	}, zap.NewNop())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, repo product.Repository, name string, stock int) *product.Product {
	t.Helper()
	p := product.NewProduct(name, "bolo", dec("4.5"), dec("10"), 2, stock)
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotZero(t, p.ID)
	return p
}
