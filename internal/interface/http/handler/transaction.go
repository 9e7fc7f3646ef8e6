package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/xiebiao/masses/internal/application/ledger"
	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/interface/http/dto"
	"github.com/xiebiao/masses/pkg/response"
)

// TransactionHandler 交易/付款HTTP处理器
type TransactionHandler struct {
	engine *appledger.Engine
}

func NewTransactionHandler(engine *appledger.Engine) *TransactionHandler {
	return &TransactionHandler{engine: engine}
}

// Register 登记订单或销售
// @Summary      登记交易
// @Description  kind=P 订单(不影响库存), kind=V 销售(扣减库存,首付生成付款记录)
// @Tags         交易
// @Accept       json
// @Produce      json
// @Param        request body dto.TransactionRequest true "交易信息"
// @Success      201 {object} response.Response{data=dto.TransactionResponse}
// @Failure      400 {object} response.Response "字段校验失败"
// @Failure      404 {object} response.Response "客户或商品不存在"
// @Failure      409 {object} response.Response "并发冲突"
// @Router       /api/v1/transactions [post]
func (h *TransactionHandler) Register(c *gin.Context) {
	var req dto.TransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]appledger.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = appledger.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
		}
	}

	txn, err := h.engine.RegisterTransaction(c.Request.Context(), appledger.RegisterTransactionCommand{
		ClientID:       req.ClientID,
		Kind:           ledger.Kind(req.Kind),
		Items:          items,
		Date:           date,
		InitialPayment: req.InitialPayment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToTransactionResponse(txn))
}

// Get 交易详情
// @Summary      交易详情(含明细与付款)
// @Tags         交易
// @Produce      json
// @Param        id path int true "交易ID"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "交易不存在"
// @Router       /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	txn, err := h.engine.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTransactionResponse(txn))
}

// List 交易列表
// @Summary      交易列表
// @Tags         交易
// @Produce      json
// @Param        client_id query int false "客户ID"
// @Param        kind query string false "P或V"
// @Param        status query string false "open/closed/cancelled"
// @Success      200 {object} response.Response{data=[]dto.TransactionResponse}
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var q dto.TransactionListQuery
	if !bindQuery(c, &q) {
		return
	}
	txns, err := h.engine.ListTransactions(c.Request.Context(), q.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTransactionList(txns))
}

// Update 修改交易客户或日期
// @Summary      修改交易
// @Tags         交易
// @Accept       json
// @Produce      json
// @Param        id path int true "交易ID"
// @Param        request body dto.TransactionPatchRequest true "客户/日期"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "交易或客户不存在"
// @Router       /api/v1/transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TransactionPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := ledger.TransactionPatch{ClientID: req.ClientID}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		patch.Date = date
	}

	txn, err := h.engine.UpdateTransaction(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTransactionResponse(txn))
}

// Cancel 取消交易
// @Summary      取消交易
// @Description  只改变状态,不回滚库存与已登记的付款
// @Tags         交易
// @Produce      json
// @Param        id path int true "交易ID"
// @Success      200 {object} response.Response{data=dto.TransactionResponse}
// @Failure      404 {object} response.Response "交易不存在"
// @Failure      422 {object} response.Response "交易已取消"
// @Router       /api/v1/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	txn, err := h.engine.CancelTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToTransactionResponse(txn))
}

// RegisterPayment 登记付款
// @Summary      登记付款
// @Description  未结金额减去付款金额,<=0时交易结清;超付不截断
// @Tags         付款
// @Accept       json
// @Produce      json
// @Param        id path int true "交易ID"
// @Param        request body dto.PaymentRequest true "付款信息"
// @Success      201 {object} response.Response{data=dto.PaymentResponse}
// @Failure      404 {object} response.Response "交易不存在"
// @Failure      422 {object} response.Response "交易已取消"
// @Router       /api/v1/transactions/{id}/payments [post]
func (h *TransactionHandler) RegisterPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	payment, err := h.engine.RegisterPayment(c.Request.Context(), id, req.Value, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToPaymentResponse(payment))
}

// ListPayments 交易的付款记录
// @Summary      付款列表
// @Tags         付款
// @Produce      json
// @Param        id path int true "交易ID"
// @Success      200 {object} response.Response{data=[]dto.PaymentResponse}
// @Failure      404 {object} response.Response "交易不存在"
// @Router       /api/v1/transactions/{id}/payments [get]
func (h *TransactionHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payments, err := h.engine.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToPaymentList(payments))
}

// GetPayment 付款详情
// @Summary      付款详情
// @Tags         付款
// @Produce      json
// @Param        id path int true "付款ID"
// @Success      200 {object} response.Response{data=dto.PaymentResponse}
// @Failure      404 {object} response.Response "付款不存在"
// @Router       /api/v1/payments/{id} [get]
func (h *TransactionHandler) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payment, err := h.engine.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToPaymentResponse(payment))
}

// GetItem 交易明细详情
// @Summary      明细详情
// @Tags         交易
// @Produce      json
// @Param        id path int true "明细ID"
// @Success      200 {object} response.Response{data=dto.ItemResponse}
// @Failure      404 {object} response.Response "明细不存在"
// @Router       /api/v1/items/{id} [get]
func (h *TransactionHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.engine.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToItemResponse(item))
}
