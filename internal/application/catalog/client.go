package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// AddClient 新增客户(名称必填,允许重名)
func (s *Service) AddClient(ctx context.Context, name, contact string) (*client.Client, error) {
	fields := apperrors.FieldErrors{}
	checkRequired(fields, client.FieldName, &name)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	c := client.NewClient(name, contact)
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("客户已创建", zap.Uint("client_id", c.ID))
	return c, nil
}

// UpdateClient 部分更新客户,语义同UpdateProduct
func (s *Service) UpdateClient(ctx context.Context, id uint, patch client.Patch) (*client.Client, error) {
	if patch.IsEmpty() {
		return nil, client.ErrEmptyPatch
	}

	fields := apperrors.FieldErrors{}
	checkRequired(fields, client.FieldName, patch.Name)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	var updated *client.Client
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		current, err := s.clients.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.clients.Update(txCtx, id, patch); err != nil {
			return err
		}
		current.Apply(patch)
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("客户已更新", zap.Uint("client_id", id))
	return updated, nil
}

func (s *Service) GetClient(ctx context.Context, id uint) (*client.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// FindClientByName 同名客户有多个时返回最早创建的
func (s *Service) FindClientByName(ctx context.Context, name string) (*client.Client, error) {
	return s.clients.FindByName(ctx, name)
}

func (s *Service) SearchClients(ctx context.Context, term string) ([]*client.Client, error) {
	return s.clients.Search(ctx, term)
}

func (s *Service) ListClients(ctx context.Context) ([]*client.Client, error) {
	return s.clients.List(ctx)
}

// ValidateName 暴露名称校验给表单层(如输入时即时提示)
func (s *Service) ValidateName(ctx context.Context, table validation.Table, name string, excludeID uint) (string, error) {
	return s.validator.ValidateName(ctx, table, name, excludeID, true)
}
