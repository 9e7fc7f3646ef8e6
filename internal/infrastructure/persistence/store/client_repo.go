package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/masses/internal/domain/client"
)

// clientRepository 客户仓储实现
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建客户仓储
func NewClientRepository(db *gorm.DB) client.Repository {
	return &clientRepository{db: db}
}

func (r *clientRepository) getDB(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db)
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	model := &ClientModel{
		Name:    c.Name,
		Contact: nullableString(c.Contact),
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "创建客户失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*client.Client, error) {
	var model ClientModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.notFoundOr(err, id, "查询客户失败")
	}
	return toClientEntity(&model), nil
}

// FindByName 同名客户有多个时返回ID最小的
func (r *clientRepository) FindByName(ctx context.Context, name string) (*client.Client, error) {
	var model ClientModel
	err := r.getDB(ctx).Where("name = ?", strings.TrimSpace(name)).Order("id ASC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound.WithMessagef("客户%q不存在", name)
		}
		return nil, translateError(err, "查询客户失败")
	}
	return toClientEntity(&model), nil
}

func (r *clientRepository) Search(ctx context.Context, term string) ([]*client.Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.List(ctx)
	}

	var models []ClientModel
	err := r.getDB(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, translateError(err, "搜索客户失败")
	}
	return toClientEntities(models), nil
}

func (r *clientRepository) List(ctx context.Context) ([]*client.Client, error) {
	var models []ClientModel
	if err := r.getDB(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, translateError(err, "查询客户列表失败")
	}
	return toClientEntities(models), nil
}

func (r *clientRepository) LockByID(ctx context.Context, id uint) (*client.Client, error) {
	var model ClientModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.notFoundOr(err, id, "锁定客户失败")
	}
	return toClientEntity(&model), nil
}

// Update 只写入Patch中非nil的列,contact传空字符串表示清除
func (r *clientRepository) Update(ctx context.Context, id uint, patch client.Patch) error {
	updates := make(map[string]interface{})
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Contact != nil {
		updates["contact"] = nullableString(strings.TrimSpace(*patch.Contact))
	}
	if len(updates) == 0 {
		return client.ErrEmptyPatch
	}

	result := r.getDB(ctx).Model(&ClientModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error, "更新客户失败")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.getDB(ctx).Model(&ClientModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateError(err, "查询客户失败")
	}
	if count == 0 {
		return client.ErrClientNotFound.WithMessagef("客户#%d不存在", id)
	}
	return nil
}

func (r *clientRepository) notFoundOr(err error, id uint, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return client.ErrClientNotFound.WithMessagef("客户#%d不存在", id)
	}
	return translateError(err, message)
}

func toClientEntities(models []ClientModel) []*client.Client {
	clients := make([]*client.Client, len(models))
	for i := range models {
		clients[i] = toClientEntity(&models[i])
	}
	return clients
}
