package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/masses/internal/domain/validation"
)

// nameLookup 名称唯一性校验使用的查询
type nameLookup struct {
	db *gorm.DB
}

// NewNameLookup 创建名称查询
func NewNameLookup(db *gorm.DB) validation.NameLookup {
	return &nameLookup{db: db}
}

// LookupName 返回精确同名行中ID最小的一条
func (l *nameLookup) LookupName(ctx context.Context, table validation.Table, name string) (uint, bool, error) {
	var model interface{}
	switch table {
	case validation.TableProducts:
		model = &ProductModel{}
	case validation.TableClients:
		model = &ClientModel{}
	default:
		return 0, false, fmt.Errorf("不支持名称校验的表: %s", table)
	}

	var ids []uint
	err := getDB(ctx, l.db).Model(model).
		Where("name = ?", name).
		Order("id ASC").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, false, translateError(err, "查询名称失败")
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}
