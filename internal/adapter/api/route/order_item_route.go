package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterOrderItemRoutes registra as rotas de itens de pedido acessadas
// diretamente pelo identificador do item
func RegisterOrderItemRoutes(
	r *gin.RouterGroup,
	orderItemController *controller.OrderItemController,
	deliveryController *controller.DeliveryController,
	authMw gin.HandlerFunc,
) {
	items := r.Group("/order-items")
	items.Use(authMw)
	{
		items.PUT("/:id", orderItemController.Update)
		items.DELETE("/:id", orderItemController.Remove)
		items.POST("/:id/deliveries", deliveryController.Record)
	}
}
