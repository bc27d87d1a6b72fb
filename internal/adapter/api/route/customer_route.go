package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(r *gin.RouterGroup, customerController *controller.CustomerController, authMw gin.HandlerFunc) {
	customers := r.Group("/customers")
	customers.Use(authMw)
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/search", customerController.Search)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
	}
}
