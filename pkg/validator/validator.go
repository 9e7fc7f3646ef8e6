// Package validator 基于go-playground/validator的结构体校验
// 校验失败统一转换为字段级错误(apperrors.FieldErrors),键为json字段路径,如 items[0].quantity
package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/masses/pkg/errors"
)

var validate = validator.New()

func init() {
	// 字段名使用json标签,与API/表单字段保持一致
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal按数值参与 gt/gte/lte 等比较
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// ValidateStruct 校验结构体,通过时返回nil,否则返回*apperrors.ValidationError
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, "参数校验异常")
	}

	fields := apperrors.FieldErrors{}
	for _, fe := range vErrs {
		fields.Set(fieldPath(fe.Namespace()), message(fe))
	}
	return fields.Err()
}

// fieldPath 去掉根结构体名: RegisterCommand.items[0].quantity → items[0].quantity
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必填"
	case "gt":
		if fe.Param() == "0" {
			return "必须大于0"
		}
		return "必须大于" + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "不能为负数"
		}
		return "不能小于" + fe.Param()
	case "min":
		if fe.Kind() == reflect.Slice {
			return "至少需要" + fe.Param() + "项"
		}
		return "不能小于" + fe.Param()
	case "max":
		return "不能超过" + fe.Param()
	case "oneof":
		return "必须是以下之一: " + fe.Param()
	default:
		return "格式不正确"
	}
}
