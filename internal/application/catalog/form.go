package catalog

import (
	"context"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

// 表单入口(Try*)
// 输入是用户在表单中键入的原始字符串,每个字段都会被校验,
// 返回的FieldErrors包含全部字段(空字符串表示该字段通过),
// 只有全部通过时才会真正写库

// ProductForm 新增商品表单
type ProductForm struct {
	Name            string
	Type            string
	ProductionPrice string
	SalePrice       string
	MinStock        string
	CurrentStock    string
}

// ProductPatchForm 修改商品表单,nil表示该字段未提交
type ProductPatchForm struct {
	Name            *string
	Type            *string
	ProductionPrice *string
	SalePrice       *string
	MinStock        *string
	CurrentStock    *string
}

// ClientForm 新增客户表单
type ClientForm struct {
	Name    string
	Contact string
}

// ClientPatchForm 修改客户表单
type ClientPatchForm struct {
	Name    *string
	Contact *string
}

func emptyProductFields() apperrors.FieldErrors {
	return apperrors.FieldErrors{
		product.FieldName:            "",
		product.FieldType:            "",
		product.FieldProductionPrice: "",
		product.FieldSalePrice:       "",
		product.FieldMinStock:        "",
		product.FieldCurrentStock:    "",
	}
}

func emptyClientFields() apperrors.FieldErrors {
	return apperrors.FieldErrors{
		client.FieldName:    "",
		client.FieldContact: "",
	}
}

// TryAddProduct 校验表单并新增商品
// 返回值: 新商品(校验失败时为nil)、字段结果、存储错误
func (s *Service) TryAddProduct(ctx context.Context, form ProductForm) (*product.Product, apperrors.FieldErrors, error) {
	fields := emptyProductFields()

	msg, err := s.validator.ValidateName(ctx, validation.TableProducts, form.Name, 0, true)
	if err != nil {
		return nil, fields, err
	}
	fields.Set(product.FieldName, msg)
	checkRequired(fields, product.FieldType, &form.Type)

	prodPrice, msg := validation.ValidateNumber(form.ProductionPrice, validation.Decimal, true)
	fields.Set(product.FieldProductionPrice, msg)
	salePrice, msg := validation.ValidateNumber(form.SalePrice, validation.Decimal, true)
	fields.Set(product.FieldSalePrice, msg)
	minStock, msg := validation.ValidateNumber(form.MinStock, validation.Integer, true)
	fields.Set(product.FieldMinStock, msg)
	currentStock, msg := validation.ValidateNumber(form.CurrentStock, validation.Integer, true)
	fields.Set(product.FieldCurrentStock, msg)

	if fields.HasErrors() {
		return nil, fields, nil
	}

	p, err := s.AddProduct(ctx, AddProductCommand{
		Name:            form.Name,
		Type:            form.Type,
		ProductionPrice: prodPrice.Decimal,
		SalePrice:       salePrice.Decimal,
		MinStock:        minStock.Int,
		CurrentStock:    currentStock.Int,
	})
	return p, fields, mergeValidation(fields, err)
}

// TryUpdateProduct 校验表单并部分更新商品
func (s *Service) TryUpdateProduct(ctx context.Context, id uint, form ProductPatchForm) (*product.Product, apperrors.FieldErrors, error) {
	fields := emptyProductFields()
	var patch product.Patch

	if form.Name != nil {
		msg, err := s.validator.ValidateName(ctx, validation.TableProducts, *form.Name, id, true)
		if err != nil {
			return nil, fields, err
		}
		fields.Set(product.FieldName, msg)
		patch.Name = form.Name
	}
	if form.Type != nil {
		checkRequired(fields, product.FieldType, form.Type)
		patch.Type = form.Type
	}
	if form.ProductionPrice != nil {
		n, msg := validation.ValidateNumber(*form.ProductionPrice, validation.Decimal, true)
		fields.Set(product.FieldProductionPrice, msg)
		patch.ProductionPrice = &n.Decimal
	}
	if form.SalePrice != nil {
		n, msg := validation.ValidateNumber(*form.SalePrice, validation.Decimal, true)
		fields.Set(product.FieldSalePrice, msg)
		patch.SalePrice = &n.Decimal
	}
	if form.MinStock != nil {
		n, msg := validation.ValidateNumber(*form.MinStock, validation.Integer, true)
		fields.Set(product.FieldMinStock, msg)
		patch.MinStock = &n.Int
	}
	if form.CurrentStock != nil {
		n, msg := validation.ValidateNumber(*form.CurrentStock, validation.Integer, true)
		fields.Set(product.FieldCurrentStock, msg)
		patch.CurrentStock = &n.Int
	}

	if fields.HasErrors() {
		return nil, fields, nil
	}

	p, err := s.UpdateProduct(ctx, id, patch)
	return p, fields, mergeValidation(fields, err)
}

// TryAddClient 校验表单并新增客户
func (s *Service) TryAddClient(ctx context.Context, form ClientForm) (*client.Client, apperrors.FieldErrors, error) {
	fields := emptyClientFields()
	checkRequired(fields, client.FieldName, &form.Name)
	if fields.HasErrors() {
		return nil, fields, nil
	}

	c, err := s.AddClient(ctx, form.Name, form.Contact)
	return c, fields, mergeValidation(fields, err)
}

// TryUpdateClient 校验表单并部分更新客户
func (s *Service) TryUpdateClient(ctx context.Context, id uint, form ClientPatchForm) (*client.Client, apperrors.FieldErrors, error) {
	fields := emptyClientFields()
	checkRequired(fields, client.FieldName, form.Name)
	if fields.HasErrors() {
		return nil, fields, nil
	}

	c, err := s.UpdateClient(ctx, id, client.Patch{Name: form.Name, Contact: form.Contact})
	return c, fields, mergeValidation(fields, err)
}

// mergeValidation 把写库阶段的字段错误(如并发插入同名商品)并入fields
// 返回值为需要调用方处理的非字段错误
func mergeValidation(fields apperrors.FieldErrors, err error) error {
	if err == nil {
		return nil
	}
	vErr, ok := apperrors.AsValidation(err)
	if !ok {
		return err
	}
	for k, v := range vErr.Fields {
		if v != "" {
			fields.Set(k, v)
		}
	}
	return nil
}
