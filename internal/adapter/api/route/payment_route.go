package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterPaymentRoutes registra as rotas de pagamentos individuais
func RegisterPaymentRoutes(r *gin.RouterGroup, paymentController *controller.PaymentController, authMw gin.HandlerFunc) {
	payments := r.Group("/payments")
	payments.Use(authMw)
	{
		payments.GET("/:id", paymentController.Get)
		payments.PUT("/:id", paymentController.Update)
		payments.DELETE("/:id", paymentController.Delete)
	}
}
