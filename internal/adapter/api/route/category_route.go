package route

import (
	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/controller"
)

// RegisterCategoryRoutes registra as rotas do módulo de categorias
func RegisterCategoryRoutes(r *gin.RouterGroup, categoryController *controller.CategoryController, authMw gin.HandlerFunc) {
	categories := r.Group("/categories")
	categories.Use(authMw)
	{
		categories.POST("", categoryController.Create)
		categories.GET("", categoryController.List)
		categories.GET("/:id", categoryController.Get)
		categories.PUT("/:id", categoryController.Update)
		categories.DELETE("/:id", categoryController.Delete)
	}
}
