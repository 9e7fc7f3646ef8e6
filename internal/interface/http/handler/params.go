package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/masses/internal/interface/http/dto"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/response"
)

const (
	fieldID   = "id"
	fieldDate = "date"

	msgInvalidID   = "必须是正整数"
	msgInvalidDate = "日期格式应为YYYY-MM-DD"
)

// pathID 解析路径参数中的ID,失败时直接写出400响应
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.NewFieldError(fieldID, msgInvalidID))
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定请求体,失败时写出40901
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessagef("参数格式错误: %s", err.Error()))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindQuery(v); err != nil {
		response.Error(c, apperrors.ErrBindError.WithMessagef("查询参数错误: %s", err.Error()))
		return false
	}
	return true
}

// parseDate 空字符串表示"今天"(返回nil,由应用层取当天)
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, s, time.UTC)
	if err != nil {
		return nil, apperrors.NewFieldError(fieldDate, msgInvalidDate)
	}
	return &t, nil
}
