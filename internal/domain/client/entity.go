package client

import (
	"strings"
	"time"
)

const (
	FieldName    = "name"
	FieldContact = "contact"
)

// Client 客户实体
// 名称必填但不要求唯一,联系方式可选
type Client struct {
	ID        uint
	Name      string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient 创建新客户
func NewClient(name, contact string) *Client {
	now := time.Now()
	return &Client{
		Name:      strings.TrimSpace(name),
		Contact:   strings.TrimSpace(contact),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch 客户部分更新,nil表示保持原值
type Patch struct {
	Name    *string
	Contact *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Contact == nil
}

// Apply 合并Patch
func (c *Client) Apply(patch Patch) {
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Contact != nil {
		c.Contact = strings.TrimSpace(*patch.Contact)
	}
	c.UpdatedAt = time.Now()
}
