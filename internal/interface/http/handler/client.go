package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/masses/internal/application/catalog"
	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/validation"
	"github.com/xiebiao/masses/internal/interface/http/dto"
	"github.com/xiebiao/masses/pkg/response"
)

// ClientHandler 客户HTTP处理器
type ClientHandler struct {
	catalog *catalog.Service
}

func NewClientHandler(svc *catalog.Service) *ClientHandler {
	return &ClientHandler{catalog: svc}
}

// Create 新增客户
// @Summary      新增客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        request body dto.ClientRequest true "客户信息"
// @Success      201 {object} response.Response{data=dto.ClientResponse}
// @Failure      400 {object} response.Response "名称为空"
// @Router       /api/v1/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	cl, err := h.catalog.AddClient(c.Request.Context(), req.Name, req.Contact)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToClientResponse(cl))
}

// Update 部分更新客户
// @Summary      修改客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Param        id path int true "客户ID"
// @Param        request body dto.ClientPatchRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=dto.ClientResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/v1/clients/{id} [patch]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ClientPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	cl, err := h.catalog.UpdateClient(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToClientResponse(cl))
}

// Get 客户详情
// @Summary      客户详情
// @Tags         客户
// @Produce      json
// @Param        id path int true "客户ID"
// @Success      200 {object} response.Response{data=dto.ClientResponse}
// @Failure      404 {object} response.Response "客户不存在"
// @Router       /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, err := h.catalog.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToClientResponse(cl))
}

// List 客户列表
// @Summary      客户列表
// @Tags         客户
// @Produce      json
// @Param        q query string false "名称关键字"
// @Success      200 {object} response.Response{data=[]dto.ClientResponse}
// @Router       /api/v1/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !bindQuery(c, &q) {
		return
	}

	ctx := c.Request.Context()
	var (
		clients []*client.Client
		err     error
	)
	if q.Q != "" {
		clients, err = h.catalog.SearchClients(ctx, q.Q)
	} else {
		clients, err = h.catalog.ListClients(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToClientList(clients))
}

// CheckName 客户名称校验,重名只作提示,新增客户不会因此失败
// @Summary      客户名称校验
// @Tags         客户
// @Produce      json
// @Param        name query string true "名称"
// @Param        exclude_id query int false "修改时排除的客户ID"
// @Success      200 {object} response.Response{data=dto.NameCheckResponse}
// @Router       /api/v1/clients/validate-name [get]
func (h *ClientHandler) CheckName(c *gin.Context) {
	checkName(c, h.catalog, validation.TableClients)
}
