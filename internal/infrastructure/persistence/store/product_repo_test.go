package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

func TestProductRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	p := seedProduct(t, repo, "Bolo de Cenoura", 5)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolo de Cenoura", got.Name)
	assert.True(t, dec("10").Equal(got.SalePrice))
	assert.Equal(t, 5, got.CurrentStock)

	byName, err := repo.FindByName(ctx, "Bolo de Cenoura")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProductRepository_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, repo, "Torta", 0)

	err := repo.Create(context.Background(), product.NewProduct("Torta", "x", dec("1"), dec("2"), 0, 0))
	vErr, ok := apperrors.AsValidation(err)
	require.True(t, ok, "唯一索引冲突应转换为字段错误: %v", err)
	assert.Equal(t, validation.MsgDuplicateName, vErr.Fields[product.FieldName])
}

func TestProductRepository_CheckConstraint(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Create(context.Background(), product.NewProduct("Pão", "x", dec("1"), dec("-2"), 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)
}

func TestProductRepository_UpdatePatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, repo, "Cuca", 7)

	price := dec("12.5")
	require.NoError(t, repo.Update(ctx, p.ID, product.Patch{SalePrice: &price}))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(got.SalePrice))
	assert.Equal(t, "Cuca", got.Name, "未修改字段保持原值")
	assert.Equal(t, 7, got.CurrentStock)
	assert.True(t, dec("4.5").Equal(got.ProductionPrice))

	assert.ErrorIs(t, repo.Update(ctx, p.ID, product.Patch{}), product.ErrEmptyPatch)
	assert.ErrorIs(t, repo.Update(ctx, 999, product.Patch{SalePrice: &price}), product.ErrProductNotFound)

	other := seedProduct(t, repo, "Sonho", 0)
	name := "Cuca"
	err = repo.Update(ctx, other.ID, product.Patch{Name: &name})
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok, "改成已存在的名称应返回字段错误")
}

func TestProductRepository_AdjustStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := seedProduct(t, repo, "Broa", 3)

	require.NoError(t, repo.AdjustStock(ctx, p.ID, -5))
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got.CurrentStock, "库存允许为负")

	require.NoError(t, repo.AdjustStock(ctx, p.ID, 10))
	got, _ = repo.FindByID(ctx, p.ID)
	assert.Equal(t, 8, got.CurrentStock)

	assert.ErrorIs(t, repo.AdjustStock(ctx, 999, 1), product.ErrProductNotFound)
}

func TestProductRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	seedProduct(t, repo, "Bolo de Milho", 0)
	seedProduct(t, repo, "Pão de Queijo", 0)
	require.NoError(t, repo.Create(ctx, product.NewProduct("Coxinha", "Salgado", dec("1"), dec("3"), 0, 0)))

	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"bolo", 2}, // 前两个的type是bolo
		{"queijo", 1},
		{"SALG", 1},
		{"pizza", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.term)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
