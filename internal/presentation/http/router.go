package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(orders *OrderHandler, products *ProductHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), Trace(), Metrics(), Logging(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", orders.CreateOrder)
		v1.GET("/orders", orders.ListOrdersByUser)
		v1.GET("/orders/:id", orders.GetOrderByID)
		v1.POST("/orders/:id/confirm", orders.ConfirmOrder)

		v1.POST("/products", products.CreateProduct)
		v1.GET("/products", products.ListProducts)
		v1.GET("/products/:id", products.GetProductByID)
		v1.PATCH("/products/:id", products.UpdateProduct)
		v1.DELETE("/products/:id", products.DeleteProduct)
	}

	return r
}
