package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/masses/internal/application/catalog"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	"github.com/xiebiao/masses/internal/interface/http/dto"
	"github.com/xiebiao/masses/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	catalog *catalog.Service
}

// NewProductHandler 创建商品处理器
func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: svc}
}

// Create 新增商品
// @Summary      新增商品
// @Description  名称必填且唯一,金额与库存不能为负
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        request body dto.ProductRequest true "商品信息"
// @Success      201 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "字段校验失败"
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.AddProduct(c.Request.Context(), catalog.AddProductCommand{
		Name:            req.Name,
		Type:            req.Type,
		ProductionPrice: req.ProductionPrice,
		SalePrice:       req.SalePrice,
		MinStock:        req.MinStock,
		CurrentStock:    req.CurrentStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProductResponse(p))
}

// Update 部分更新商品
// @Summary      修改商品
// @Description  只修改请求中出现的字段,库存等其他并发修改不会被覆盖
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body dto.ProductPatchRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "字段校验失败"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ProductPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

// Get 查询商品
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductResponse(p))
}

// List 商品列表
// @Summary      商品列表
// @Description  q非空时按名称模糊搜索
// @Tags         商品
// @Produce      json
// @Param        q query string false "名称关键字"
// @Success      200 {object} response.Response{data=[]dto.ProductResponse}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}

	ctx := c.Request.Context()
	var (
		products []*product.Product
		err      error
	)
	if q.Q != "" {
		products, err = h.catalog.SearchProducts(ctx, q.Q)
	} else {
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductList(products))
}

// CheckName 检查商品名称是否可用
// @Summary      商品名称校验
// @Tags         商品
// @Produce      json
// @Param        name query string true "名称"
// @Param        exclude_id query int false "修改时排除的商品ID"
// @Success      200 {object} response.Response{data=dto.NameCheckResponse}
// @Router       /api/v1/products/validate-name [get]
func (h *ProductHandler) CheckName(c *gin.Context) {
	checkName(c, h.catalog, validation.TableProducts)
}

func checkName(c *gin.Context, svc *catalog.Service, table validation.Table) {
	var q dto.NameCheckQuery
	if !bindQuery(c, &q) {
		return
	}
	msg, err := svc.ValidateName(c.Request.Context(), table, q.Name, q.ExcludeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.NameCheckResponse{
		Name:    q.Name,
		Valid:   msg == "",
		Message: msg,
	})
}
