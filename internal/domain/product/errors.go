package product

import (
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// 商品领域错误定义
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "商品不存在")

	// ErrEmptyPatch 没有需要更新的字段
	ErrEmptyPatch = apperrors.New(apperrors.ErrCodeInvalidParams, "没有需要更新的字段")
)
