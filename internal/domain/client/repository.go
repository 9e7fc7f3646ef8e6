package client

import (
	"context"
)

// Repository 客户仓储接口
type Repository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uint) (*Client, error)
	FindByName(ctx context.Context, name string) (*Client, error)

	// Search 按名称模糊查询,term为空时返回全部
	Search(ctx context.Context, term string) ([]*Client, error)
	List(ctx context.Context) ([]*Client, error)
	LockByID(ctx context.Context, id uint) (*Client, error)
	Update(ctx context.Context, id uint, patch Patch) error
}
