package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterDeliveryRoutes registra as rotas de entregas individuais
func RegisterDeliveryRoutes(r *gin.RouterGroup, deliveryController *controller.DeliveryController, authMw gin.HandlerFunc) {
	deliveries := r.Group("/deliveries")
	deliveries.Use(authMw)
	{
		deliveries.GET("/:id", deliveryController.Get)
		deliveries.PUT("/:id", deliveryController.Update)
		deliveries.DELETE("/:id", deliveryController.Delete)
	}
}
