package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterOrderRoutes registra as rotas do módulo de pedidos e das
// operações aninhadas de itens, entregas, pagamentos e fatura
func RegisterOrderRoutes(
	r *gin.RouterGroup,
	orderController *controller.OrderController,
	orderItemController *controller.OrderItemController,
	deliveryController *controller.DeliveryController,
	paymentController *controller.PaymentController,
	invoiceController *controller.InvoiceController,
	authMw gin.HandlerFunc,
) {
	orders := r.Group("/orders")
	orders.Use(authMw)
	{
		orders.POST("", orderController.Create)
		orders.GET("", orderController.List)
		orders.GET("/pending-delivery", orderController.PendingDeliveries)
		orders.GET("/pending-payment", orderController.PendingPayments)
		orders.GET("/next-invoice-no", orderController.NextInvoiceNo)
		orders.GET("/:id", orderController.Get)
		orders.PUT("/:id", orderController.Update)
		orders.POST("/:id/cancel", orderController.Cancel)

		orders.POST("/:id/items", orderItemController.Add)
		orders.GET("/:id/items", orderItemController.List)

		orders.POST("/:id/deliver", deliveryController.DeliverFull)
		orders.GET("/:id/deliveries", deliveryController.ListByOrder)
		orders.GET("/:id/delivery-summary", deliveryController.Summary)

		orders.POST("/:id/payments", paymentController.Record)
		orders.GET("/:id/payments", paymentController.ListByOrder)
		orders.GET("/:id/payment-summary", paymentController.Summary)

		orders.GET("/:id/invoice", invoiceController.Get)
	}
}
