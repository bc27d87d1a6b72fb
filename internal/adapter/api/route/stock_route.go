package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterStockRoutes registra as rotas do módulo de estoque
func RegisterStockRoutes(r *gin.RouterGroup, stockController *controller.StockController, authMw gin.HandlerFunc) {
	stocks := r.Group("/stocks")
	stocks.Use(authMw)
	{
		stocks.POST("", stockController.Create)
		stocks.GET("", stockController.List)
		stocks.GET("/low", stockController.LowStock)
		stocks.GET("/:id", stockController.Get)
		stocks.PUT("/:id", stockController.Update)
		stocks.PATCH("/:id/adjust", stockController.Adjust)
		stocks.DELETE("/:id", stockController.Delete)
	}
}
