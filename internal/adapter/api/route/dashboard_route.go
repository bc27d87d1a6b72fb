package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterDashboardRoutes registra a rota de indicadores consolidados
func RegisterDashboardRoutes(r *gin.RouterGroup, dashboardController *controller.DashboardController, authMw gin.HandlerFunc) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(authMw)
	{
		dashboard.GET("", dashboardController.Stats)
	}
}
