package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于调用方判断错误类型（NotFound/Constraint/Conflict...）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 领域层常常基于同一个哨兵错误生成带上下文的新错误(如"商品#5不存在")，
// 这里让 errors.Is(err, product.ErrProductNotFound) 依然成立
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Code != ErrCodeInternal
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithMessagef 基于预定义错误派生一个带上下文的错误，错误码不变
func (e *AppError) WithMessagef(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     e.Err,
	}
}

// WithCause 基于预定义错误派生一个携带底层原因的错误
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeInvalidStatus     = 40002 // 交易状态非法
	ErrCodeDuplicateEntry    = 40009 // 重复记录(通用)
	ErrCodeTransactionClosed = 40010 // 交易已取消

	// 资源错误（40400-40499）
	ErrCodeNotFound            = 40400 // 资源不存在(通用)
	ErrCodeProductNotFound     = 40401 // 商品不存在
	ErrCodeClientNotFound      = 40402 // 客户不存在
	ErrCodeTransactionNotFound = 40403 // 交易不存在
	ErrCodeRecordNotFound      = 40404 // 明细/付款/生产记录不存在

	// 参数错误（40900-40999）
	ErrCodeInvalidParams       = 40900 // 参数错误(字段校验)
	ErrCodeBindError           = 40901 // 参数绑定失败
	ErrCodeConstraintViolation = 40910 // 存储层约束失败(外键/检查约束)
	ErrCodeConcurrencyConflict = 40920 // 并发冲突(序列化失败/死锁)
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	ErrNotFound            = New(ErrCodeNotFound, "资源不存在")
	ErrInvalidParams       = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError           = New(ErrCodeBindError, "参数格式错误")
	ErrConstraintViolation = New(ErrCodeConstraintViolation, "数据完整性约束失败")
	ErrConcurrencyConflict = New(ErrCodeConcurrencyConflict, "并发冲突，请重试")
)

// =========================================
// 字段级校验错误
// =========================================

// FieldErrors 字段名 → 错误提示，空字符串表示该字段没有问题
// 调用方(表单/API)可以一次性展示所有字段的结果
type FieldErrors map[string]string

// Set 记录字段错误(空消息等价于清除)
func (f FieldErrors) Set(field, message string) {
	f[field] = message
}

// HasErrors 是否存在任一字段错误
func (f FieldErrors) HasErrors() bool {
	for _, msg := range f {
		if msg != "" {
			return true
		}
	}
	return false
}

// Err 有错误时返回*ValidationError，否则返回nil
func (f FieldErrors) Err() error {
	if !f.HasErrors() {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError 可由用户修正的字段校验错误(必填/重复/负数/非数字)
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return fmt.Sprintf("[%d] 参数校验失败: %s", ErrCodeInvalidParams, strings.Join(parts, "; "))
}

// Is 让 errors.Is(err, ErrInvalidParams) 对字段错误同样成立
func (e *ValidationError) Is(target error) bool {
	var t *AppError
	return errors.As(target, &t) && t.Code == ErrCodeInvalidParams
}

// NewFieldError 单字段校验错误的快捷构造
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: message}}
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &AppError{Code: ErrCodeInvalidParams, Message: "参数校验失败", Err: vErr}
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// AsValidation 提取字段错误
func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// IsNotFound 是否为资源不存在类错误(404xx)
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code/100 == ErrCodeNotFound/100
	}
	return false
}

// IsConcurrencyConflict 是否为可重试的并发冲突
func IsConcurrencyConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConcurrencyConflict
}
