// Package validation 名称唯一性与数值字段校验
// 校验结果是"提示文本",空字符串表示通过,调用方把结果收集进FieldErrors
package validation

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 校验失败的提示文本
const (
	MsgRequired      = "必填"
	MsgDuplicateName = "名称已存在"
	MsgNegative      = "不能为负数"
	MsgNotANumber    = "必须是有效数字"
	MsgMoneyScale    = "最多两位小数"
)

// MoneyScale 金额列为decimal(12,2)
const MoneyScale int32 = 2

// CheckMoney 校验金额: 非负且最多两位小数
// 1.10与1.100都合法,末尾的0不计入精度
func CheckMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return MsgNegative
	}
	if !d.Equal(d.Round(MoneyScale)) {
		return MsgMoneyScale
	}
	return ""
}

// Table 可做名称校验的表
type Table string

const (
	TableProducts Table = "products"
	TableClients  Table = "clients"
)

// NumberKind 数值类型
type NumberKind int

const (
	Integer NumberKind = iota
	Decimal
)

// NameLookup 按精确名称查找行ID
type NameLookup interface {
	LookupName(ctx context.Context, table Table, name string) (id uint, found bool, err error)
}

// Validator 需要访问存储的校验(名称唯一性)
type Validator struct {
	lookup NameLookup
}

func NewValidator(lookup NameLookup) *Validator {
	return &Validator{lookup: lookup}
}

// ValidateName 校验名称
// required为true时空名称返回MsgRequired
// 存在同名行且其ID不等于excludeID时返回MsgDuplicateName(excludeID为0表示不排除)
// 客户名称不要求唯一,调用方对clients只做必填校验即可
func (v *Validator) ValidateName(ctx context.Context, table Table, name string, excludeID uint, required bool) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if required {
			return MsgRequired, nil
		}
		return "", nil
	}

	id, found, err := v.lookup.LookupName(ctx, table, name)
	if err != nil {
		return "", err
	}
	if found && id != excludeID {
		return MsgDuplicateName, nil
	}
	return "", nil
}

// Number ValidateNumber的解析结果
type Number struct {
	Present bool // 原始输入非空
	Int     int
	Decimal decimal.Decimal
}

// ValidateNumber 解析并校验数值输入
// 小数同时接受'.'和','作为小数点;空输入且非必填时返回Present=false
func ValidateNumber(raw string, kind NumberKind, required bool) (Number, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return Number{}, MsgRequired
		}
		return Number{}, ""
	}

	switch kind {
	case Integer:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Number{}, MsgNotANumber
		}
		if n < 0 {
			return Number{}, MsgNegative
		}
		return Number{Present: true, Int: n, Decimal: decimal.NewFromInt(int64(n))}, ""
	default:
		d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
		if err != nil {
			return Number{}, MsgNotANumber
		}
		if msg := CheckMoney(d); msg != "" {
			return Number{}, msg
		}
		return Number{Present: true, Decimal: d}, ""
	}
}
