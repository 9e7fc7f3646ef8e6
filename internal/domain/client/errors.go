package client

import (
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

var (
	// ErrClientNotFound 客户不存在
	ErrClientNotFound = apperrors.New(apperrors.ErrCodeClientNotFound, "客户不存在")

	// ErrEmptyPatch 没有需要更新的字段
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidParams, "没有需要更新的字段")
)
