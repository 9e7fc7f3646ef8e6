package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断错误类型(0表示成功)
// 2. Message是用户友好的提示信息
// 3. Data成功时是业务数据,字段校验失败时是 字段→提示 的映射
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError与字段校验错误）
// 内部错误通过c.Error挂到上下文,由日志中间件统一记录,不返回给客户端
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	if vErr, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, Response{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: "参数校验失败",
			Data:    nonEmpty(vErr.Fields),
		})
		return
	}

	appErr := apperrors.GetAppError(err)
	c.JSON(HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(HTTPStatus(code), Response{
		Code:    code,
		Message: message,
	})
}

// HTTPStatus 业务错误码 → HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code == apperrors.ErrCodeConstraintViolation, code == apperrors.ErrCodeConcurrencyConflict:
		return http.StatusConflict
	case code/100 == apperrors.ErrCodeNotFound/100:
		return http.StatusNotFound
	case code/100 == apperrors.ErrCodeInvalidParams/100:
		return http.StatusBadRequest
	case code/100 == apperrors.ErrCodeBusinessError/100:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func nonEmpty(fields apperrors.FieldErrors) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
