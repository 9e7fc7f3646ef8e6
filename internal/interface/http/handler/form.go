package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/masses/internal/application/catalog"
	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/interface/http/dto"
	apperrors "github.com/xiebiao/masses/pkg/errors"
	"github.com/xiebiao/masses/pkg/response"
)

// FormHandler 表单入口(application/x-www-form-urlencoded)
//
// 设计说明:
// 1. 字段值是用户键入的原始字符串,数字解析与校验在应用层完成
// 2. 响应中fields包含全部字段,前端可以逐个字段清除或显示提示
// 3. 修改时只有请求中出现的字段才会被校验和写入
type FormHandler struct {
	catalog *catalog.Service
}

func NewFormHandler(svc *catalog.Service) *FormHandler {
	return &FormHandler{catalog: svc}
}

// AddProduct 表单新增商品
// @Summary      表单新增商品
// @Tags         表单
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name formData string true "名称"
// @Param        type formData string true "类型"
// @Param        production_price formData string true "生产成本"
// @Param        sale_price formData string true "售价"
// @Param        min_stock formData string true "最低库存"
// @Param        current_stock formData string true "当前库存"
// @Success      201 {object} response.Response{data=dto.FormResult}
// @Failure      400 {object} response.Response{data=dto.FormResult} "字段校验失败"
// @Router       /api/v1/forms/products [post]
func (h *FormHandler) AddProduct(c *gin.Context) {
	p, fields, err := h.catalog.TryAddProduct(c.Request.Context(), catalog.ProductForm{
		Name:            c.PostForm(product.FieldName),
		Type:            c.PostForm(product.FieldType),
		ProductionPrice: c.PostForm(product.FieldProductionPrice),
		SalePrice:       c.PostForm(product.FieldSalePrice),
		MinStock:        c.PostForm(product.FieldMinStock),
		CurrentStock:    c.PostForm(product.FieldCurrentStock),
	})
	writeFormResult(c, fields, err, http.StatusCreated, func(r *dto.FormResult) {
		r.Product = dto.ToProductResponse(p)
	})
}

// UpdateProduct 表单修改商品
// @Summary      表单修改商品
// @Tags         表单
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.FormResult}
// @Failure      400 {object} response.Response{data=dto.FormResult} "字段校验失败"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/forms/products/{id} [post]
func (h *FormHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, fields, err := h.catalog.TryUpdateProduct(c.Request.Context(), id, catalog.ProductPatchForm{
		Name:            postFormPtr(c, product.FieldName),
		Type:            postFormPtr(c, product.FieldType),
		ProductionPrice: postFormPtr(c, product.FieldProductionPrice),
		SalePrice:       postFormPtr(c, product.FieldSalePrice),
		MinStock:        postFormPtr(c, product.FieldMinStock),
		CurrentStock:    postFormPtr(c, product.FieldCurrentStock),
	})
	writeFormResult(c, fields, err, http.StatusOK, func(r *dto.FormResult) {
		r.Product = dto.ToProductResponse(p)
	})
}

// AddClient 表单新增客户
// @Summary      表单新增客户
// @Tags         表单
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name formData string true "名称"
// @Param        contact formData string false "联系方式"
// @Success      201 {object} response.Response{data=dto.FormResult}
// @Failure      400 {object} response.Response{data=dto.FormResult} "字段校验失败"
// @Router       /api/v1/forms/clients [post]
func (h *FormHandler) AddClient(c *gin.Context) {
	cl, fields, err := h.catalog.TryAddClient(c.Request.Context(), catalog.ClientForm{
		Name:    c.PostForm(client.FieldName),
		Contact: c.PostForm(client.FieldContact),
	})
	writeFormResult(c, fields, err, http.StatusCreated, func(r *dto.FormResult) {
		r.Client = dto.ToClientResponse(cl)
	})
}

// UpdateClient 表单修改客户
// @Summary      表单修改客户
// @Tags         表单
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.FormResult}
// @Failure      400 {object} response.Response{data=dto.FormResult} "字段校验失败"
// @Router       /api/v1/forms/clients/{id} [post]
func (h *FormHandler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, fields, err := h.catalog.TryUpdateClient(c.Request.Context(), id, catalog.ClientPatchForm{
		Name:    postFormPtr(c, client.FieldName),
		Contact: postFormPtr(c, client.FieldContact),
	})
	writeFormResult(c, fields, err, http.StatusOK, func(r *dto.FormResult) {
		r.Client = dto.ToClientResponse(cl)
	})
}

// postFormPtr 字段未出现在请求体中时返回nil
func postFormPtr(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

// writeFormResult 存储错误走统一错误响应,字段错误返回400并带上完整字段表
func writeFormResult(c *gin.Context, fields apperrors.FieldErrors, err error, okStatus int, fill func(*dto.FormResult)) {
	if err != nil {
		response.Error(c, err)
		return
	}

	result := &dto.FormResult{Fields: fields}
	if fields.HasErrors() {
		c.JSON(http.StatusBadRequest, response.Response{
			Code:    apperrors.ErrCodeInvalidParams,
			Message: "参数校验失败",
			Data:    result,
		})
		return
	}

	fill(result)
	c.JSON(okStatus, response.Response{Code: 0, Message: "success", Data: result})
}
