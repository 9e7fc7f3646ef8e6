package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/xiebiao/masses/internal/application/ledger"
	"github.com/xiebiao/masses/internal/interface/http/dto"
	"github.com/xiebiao/masses/pkg/response"
)

// ProductionHandler 生产记录HTTP处理器
type ProductionHandler struct {
	engine *appledger.Engine
}

func NewProductionHandler(engine *appledger.Engine) *ProductionHandler {
	return &ProductionHandler{engine: engine}
}

// Register 登记生产
// @Summary      登记生产记录
// @Description  只追加记录,不改变商品库存
// @Tags         生产
// @Accept       json
// @Produce      json
// @Param        request body dto.ProductionRequest true "生产信息"
// @Success      201 {object} response.Response{data=dto.ProductionResponse}
// @Failure      400 {object} response.Response "数量必须为正"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/productions [post]
func (h *ProductionHandler) Register(c *gin.Context) {
	var req dto.ProductionRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	production, err := h.engine.RegisterProduction(c.Request.Context(), req.ProductID, req.Quantity, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToProductionResponse(production))
}

// List 生产记录列表
// @Summary      生产记录列表
// @Tags         生产
// @Produce      json
// @Param        product_id query int false "商品ID"
// @Success      200 {object} response.Response{data=[]dto.ProductionResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/productions [get]
func (h *ProductionHandler) List(c *gin.Context) {
	var q dto.ProductionListQuery
	if !bindQuery(c, &q) {
		return
	}
	productions, err := h.engine.ListProductions(c.Request.Context(), q.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductionList(productions))
}

// Get 生产记录详情
// @Summary      生产记录详情
// @Tags         生产
// @Produce      json
// @Param        id path int true "生产记录ID"
// @Success      200 {object} response.Response{data=dto.ProductionResponse}
// @Failure      404 {object} response.Response "生产记录不存在"
// @Router       /api/v1/productions/{id} [get]
func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	production, err := h.engine.GetProduction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductionResponse(production))
}
