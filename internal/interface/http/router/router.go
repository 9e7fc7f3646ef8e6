package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/interface/http/handler"
	"github.com/xiebiao/masses/internal/interface/http/middleware"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Product     *handler.ProductHandler
	Client      *handler.ClientHandler
	Form        *handler.FormHandler
	Transaction *handler.TransactionHandler
	Production  *handler.ProductionHandler
}

// New 创建Gin引擎并注册路由
//
// 中间件顺序: Recovery → Logger → Metrics → Tracing
// Recovery在最外层,保证后续中间件的panic也能被捕获
func New(h Handlers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.Tracing(),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/validate-name", h.Product.CheckName)
		products.GET("/:id", h.Product.Get)
		products.PATCH("/:id", h.Product.Update)

		clients := v1.Group("/clients")
		clients.POST("", h.Client.Create)
		clients.GET("", h.Client.List)
		clients.GET("/validate-name", h.Client.CheckName)
		clients.GET("/:id", h.Client.Get)
		clients.PATCH("/:id", h.Client.Update)

		forms := v1.Group("/forms")
		forms.POST("/products", h.Form.AddProduct)
		forms.POST("/products/:id", h.Form.UpdateProduct)
		forms.POST("/clients", h.Form.AddClient)
		forms.POST("/clients/:id", h.Form.UpdateClient)

		transactions := v1.Group("/transactions")
		transactions.POST("", h.Transaction.Register)
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.PATCH("/:id", h.Transaction.Update)
		transactions.POST("/:id/cancel", h.Transaction.Cancel)
		transactions.POST("/:id/payments", h.Transaction.RegisterPayment)
		transactions.GET("/:id/payments", h.Transaction.ListPayments)

		v1.GET("/payments/:id", h.Transaction.GetPayment)
		v1.GET("/items/:id", h.Transaction.GetItem)

		productions := v1.Group("/productions")
		productions.POST("", h.Production.Register)
		productions.GET("", h.Production.List)
		productions.GET("/:id", h.Production.Get)
	}

	return r
}
