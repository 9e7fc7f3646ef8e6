package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// 存储层错误翻译
// 设计说明:
// 1. 驱动错误只在这里识别一次,上层只看到AppError
// 2. 先判断gorm翻译后的哨兵错误,再按驱动错误码,最后按错误信息兜底
//
// MySQL:    1062 唯一键冲突, 1451/1452 外键, 3819 检查约束, 1213 死锁, 1205 锁等待超时
// Postgres: 23505 唯一键冲突, 23503 外键, 23514 检查约束, 40001 序列化失败, 40P01 死锁
// SQLite:   UNIQUE/FOREIGN KEY/CHECK constraint failed, database is locked(SQLITE_BUSY)

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if code, ok := mysqlCode(err); ok && code == 1062 {
		return true
	}
	if code, ok := pgCode(err); ok && code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyError 判断是否为外键约束失败
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if code, ok := mysqlCode(err); ok && (code == 1451 || code == 1452) {
		return true
	}
	if code, ok := pgCode(err); ok && code == "23503" {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// isCheckError 判断是否为检查约束失败
func isCheckError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if code, ok := mysqlCode(err); ok && code == 3819 {
		return true
	}
	if code, ok := pgCode(err); ok && code == "23514" {
		return true
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// isConflictError 判断是否为可重试的并发冲突
func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	if apperrors.IsConcurrencyConflict(err) {
		return true
	}
	if code, ok := mysqlCode(err); ok && (code == 1213 || code == 1205) {
		return true
	}
	if code, ok := pgCode(err); ok && (code == "40001" || code == "40P01") {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// translateError 把存储层错误转换为AppError
// 已经是AppError(或字段校验错误)的直接返回
func translateError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsValidation(err); ok {
		return err
	}
	if apperrors.IsAppError(err) {
		return err
	}

	switch {
	case isConflictError(err):
		return apperrors.ErrConcurrencyConflict.WithCause(err)
	case isForeignKeyError(err):
		return apperrors.ErrConstraintViolation.WithMessagef("%s: 关联记录不存在或仍被引用", message).WithCause(err)
	case isCheckError(err):
		return apperrors.ErrConstraintViolation.WithMessagef("%s: 数据不满足检查约束", message).WithCause(err)
	case isDuplicateError(err):
		return apperrors.ErrConstraintViolation.WithMessagef("%s: 记录重复", message).WithCause(err)
	default:
		return apperrors.Wrapf(err, "%s: 数据库操作异常", message)
	}
}

func mysqlCode(err error) (uint16, bool) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number, true
	}
	return 0, false
}

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
